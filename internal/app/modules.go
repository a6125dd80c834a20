package app

import (
	"github.com/specialistvlad/flowkit/internal/registry"
	"github.com/specialistvlad/flowkit/modules/context_proc"
	"github.com/specialistvlad/flowkit/modules/string_ops"
	"github.com/specialistvlad/flowkit/modules/string_probe"
	"github.com/specialistvlad/flowkit/modules/text_io"
)

// coreModules is the definitive list of all extension modules that are
// compiled into the flowkit binary.
var coreModules = []registry.Module{
	&string_ops.Module{},
	&string_probe.Module{},
	&text_io.Module{},
	&context_proc.Module{},
}
