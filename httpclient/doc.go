// Package httpclient provides the authenticated HTTP transport used by the
// GitHub client.
//
// An Adapter is bound to one base URL and one credential. Every call gets
// the configured default headers and authorization. Non-2xx responses are
// returned as *Error values carrying the status code and raw body. The
// adapter never retries; retry policy belongs to the caller.
//
// # Basic Usage
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.github.com",
//	    Auth:    httpclient.BearerAuth(token),
//	})
//
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/repos/foo/bar",
//	})
//	next := resp.Links()["next"]
//
// # Downloads
//
//	stream, err := a.DoStream(ctx, httpclient.Request{Method: http.MethodGet, Path: path})
//	dl := httpclient.NewDownload(stream, 0)
//	defer dl.Close()
//	for chunk, err := range dl.All() { ... }
package httpclient
