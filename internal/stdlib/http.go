package stdlib

import (
	"io"
	"net/http"
	"time"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerHTTP wires spec.md §6's http module (reserved/implementation-
// defined): a minimal blocking GET, enough for scripts that fetch a
// resource and feed it to json.parse or fs-style text processing.
func (r *Registry) registerHTTP() {
	client := &http.Client{Timeout: 30 * time.Second}

	r.register("http", "get", CategoryHTTP, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		url, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		resp, reqErr := client.Get(url)
		if reqErr != nil {
			return errResult(reqErr.Error())
		}
		defer resp.Body.Close()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return errResult(readErr.Error())
		}
		if resp.StatusCode >= 400 {
			return errResult(resp.Status)
		}
		return ok(evaluator.Str(string(body)))
	})
}
