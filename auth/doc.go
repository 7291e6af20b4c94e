// Package auth secures the glflow serve endpoint.
//
// Two credential styles are supported:
//   - Static API keys ("glflow_..." bearer tokens) verified against a
//     stored SHA-256 hash
//   - Short-lived JWTs with operation scopes, signed with a shared secret
//
// # API Keys
//
// Issue a long-lived key for a CI runner or bot account:
//
//	key, err := auth.GenerateAPIKey(auth.APIKeyConfig{})
//	// key.Secret: "glflow_aBc123..." (show once)
//	// key.Hash:   store in config as serve_token_hash
//	// key.Prefix: "glflow_aBc1..." (safe to log)
//
// Verify an incoming bearer token in constant time:
//
//	if auth.VerifyTokenHash(token, storedHash) {
//	    // authenticated
//	}
//
// # JWT Usage
//
// Configure and issue scoped tokens:
//
//	cfg := auth.JWTConfig{
//	    Secret: []byte("your-32-byte-or-longer-secret-key"),
//	    Issuer: "glflow",
//	}
//
//	token, err := auth.GenerateScopedToken(cfg, "ci-bot", []string{"health", "mr:create"})
//
//	claims, err := auth.ValidateScopedToken(cfg, token)
//	if err := auth.RequireScope(claims, "mr:create"); err != nil {
//	    // token not allowed to create merge requests
//	}
//
// # Custom Claims
//
// Extend BaseClaims when the granted scopes are not enough:
//
//	type RunnerClaims struct {
//	    auth.BaseClaims
//	    Project string `json:"project"`
//	}
//
//	token, err := auth.GenerateAccessTokenWithClaims(cfg, func(base auth.BaseClaims) RunnerClaims {
//	    base.Subject = "runner-7"
//	    return RunnerClaims{BaseClaims: base, Project: "group/repo"}
//	})
//
//	claims := &RunnerClaims{}
//	err = auth.ValidateAccessTokenAs(cfg, token, claims)
package auth
