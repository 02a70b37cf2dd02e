// Package widgets provides the widgets stream component templates render to.
//
// Text is a leaf holding a string; Column stacks children in order. Both are
// plain struct literals:
//
//	Column{Items: []core.Widget{
//	    Text{Content: "Title"},
//	    Text{Content: fmt.Sprintf("Count: %d", n)},
//	}}
//
// Importing this package also registers ErrorWidget as the fallback shown in
// place of a widget whose build panicked.
package widgets
