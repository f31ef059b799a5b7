//go:build !js_eval

package virtuals

// JSGetter is unavailable without the js_eval build tag.
func JSGetter(expression string, opts ...JSGetterOption) Getter {
	_ = applyJSGetterOptions(opts)
	return nil
}

func jsGetterAvailable() bool {
	return false
}
