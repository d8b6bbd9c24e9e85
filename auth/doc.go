// Package auth issues and verifies the HMAC-signed bearer tokens that guard
// the HTTP surface when server.jwt_secret is set.
//
//	svc, err := auth.NewService(auth.Config{Secret: cfg.Server.JWTSecret})
//	token, err := svc.Issue("workflow-host")
//	claims, err := svc.Parse(token)
//
// Verified claims travel in the request context:
//
//	ctx = auth.WithClaims(ctx, claims)
//	claims, ok := auth.ClaimsFromContext(ctx)
package auth
