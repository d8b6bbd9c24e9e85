// Package httpclient is the HTTP transport shared by the LLM providers.
//
// The Client handles base URLs, default headers, per-request auth, JSON
// bodies and status classification. Provider packages use the typed Get and
// Post helpers and translate failures with ToAppError, so a refused
// connection, a timeout, a 401 and a 429 each surface as a distinct
// errors.AppError code.
//
//	client, _ := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.moonshot.cn/v1",
//	    Timeout: 60 * time.Second,
//	    Auth:    httpclient.BearerAuth(key),
//	})
//
//	resp, err := httpclient.Post[chatResponse](client, ctx, "/chat/completions", body)
//	if err != nil {
//	    return httpclient.ToAppError("moonshot", err)
//	}
package httpclient
