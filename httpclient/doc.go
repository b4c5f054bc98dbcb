// Package httpclient provides a small HTTP client used to talk to
// external services.
//
// Usage:
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	})
//
//	resp, err := client.Get(ctx, "/users/123")
//	var user User
//	err = resp.JSON(&user)
//
// Every request carries an X-Request-ID header so calls can be
// correlated across services.
package httpclient
