//go:build !js_eval

package walk

import "errors"

// ErrJSUnavailable is returned by JS when built without the js_eval tag.
var ErrJSUnavailable = errors.New("walk: JavaScript parsing requires the js_eval build tag")

// JS is unavailable without the js_eval build tag.
func JS(src string, opts ...Option) (Result, error) {
	_ = newWalker("js", opts)
	return Result{}, ErrJSUnavailable
}

// JSAvailable reports whether JS parsing was compiled in.
func JSAvailable() bool {
	return false
}
