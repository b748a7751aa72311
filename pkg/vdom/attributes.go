package vdom

import (
	"fmt"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("role", "counter") → data-role="counter"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Src sets the src attribute.
func Src(src string) Attr { return attr("src", src) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Key sets the reconciliation key.
func Key(key any) Attr { return attr("key", fmt.Sprint(key)) }
