// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package schema describes topic types: named sets of declared fields, each
// with a cty value type, an optional default, and an optional reference to
// the topic type that nested compound values of that field are bound to.
//
// Types are either built in Go (NewType / Field) or parsed from HCL topic
// manifests:
//
//	topic "Player" {
//	  description = "A player profile."
//	  index       = ["playerId"]
//
//	  field "level" {
//	    type    = number
//	    default = 1
//	  }
//
//	  field "inventory" {
//	    type = list(object)
//	    ref  = "Item"
//	  }
//	}
//
// A manifest only describes shapes and defaults. References are resolved by
// the registry, not here, so manifests may reference types declared in other
// files.
package schema
