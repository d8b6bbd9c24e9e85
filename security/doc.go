// Package security builds the client TLS settings used to reach Moonshot
// or Ollama through an https endpoint signed by a private CA.
//
//	ollama:
//	  base_url: https://gpu-box.internal:11434
//	  tls:
//	    ca_file: /etc/promptkit/ca.pem
//	    min_version: "1.3"
package security
