// Package dom provides a small retained element tree for hosting
// interactive behaviors.
//
// The tree is the integration point between a host platform (a terminal,
// a test harness, a native bridge) and behaviors such as drag-to-reorder.
// Hosts build nodes, attach them under a [Document] body and deliver input
// as [Event] values through [Node.Dispatch]. Behaviors observe those events
// through listeners and express visual state as classes and attributes,
// which the host reads back when it renders.
//
// # Building a tree
//
//	doc := dom.NewDocument()
//	list := dom.NewElement("ul")
//	for i, name := range items {
//	    row := dom.NewElement("li").SetText(name)
//	    row.AppendChild(dom.NewElement("span").AddClass("handle"))
//	    row.SetDirective("draggable", reorder.Options{OrdinalIndex: i})
//	    list.AppendChild(row)
//	}
//	doc.Body().AppendChild(list)
//
// # Events
//
// Events bubble from the target to the root unless a listener calls
// [Event.StopPropagation]. Custom events created with [NewCustomEvent] do
// not bubble. Listener panics are recovered and routed to the errors
// package handler, so a faulty behavior never unwinds into the host.
//
// # Selectors
//
// [ParseSelector] accepts a CSS subset: tags, ids, classes, attribute tests,
// descendant and child combinators and selector lists. Parse failures are
// returned as [*SelectorError].
package dom
