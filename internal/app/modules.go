package app

import (
	"github.com/vk/tomeview/internal/registry"
	"github.com/vk/tomeview/modules/session"
)

// coreModules is the definitive list of all modules that are compiled into
// the tomeview binary.
var coreModules = []registry.Module{
	&session.Module{},
}
