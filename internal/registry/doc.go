// Package registry is the type metadata registry views consult.
//
// The Registry maps topic type names to their declared schema.Type, answers
// "what type is field F of type T bound to" for compound field reads, and
// maps Go types to topic types so a value written through a view can be
// recognised by its runtime type.
//
// During application startup the registry is populated from topic manifests
// and Go modules and then validated, so that dangling references surface
// before any topic is built. It is read-only afterwards.
package registry
