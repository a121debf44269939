package ai

import (
	"embed"
	"fmt"

	"github.com/cory-johannsen/tombs/internal/scripting"
)

//go:embed content/domains/*.yaml content/scripts/*.lua
var content embed.FS

// LoadDefaultRegistry registers the built-in HTN domains. Each domain's
// preconditions are loaded into a Lua scope named after the domain.
//
// Precondition: mgr must not be nil.
func LoadDefaultRegistry(mgr *scripting.Manager, instLimit int) (*Registry, error) {
	domains, err := LoadDomainsFS(content, "content/domains")
	if err != nil {
		return nil, err
	}
	reg := NewRegistry()
	for _, d := range domains {
		name := "content/scripts/" + d.ID + ".lua"
		src, err := content.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("ai.LoadDefaultRegistry: domain %q: %w", d.ID, err)
		}
		if err := mgr.LoadString(d.ID, name, string(src), instLimit); err != nil {
			return nil, err
		}
		if err := reg.Register(d, mgr, d.ID); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// LoadRegistry adds the domains in domainDir to reg. Scripts in scriptDir are
// loaded into the global Lua scope, which every domain scope falls back to.
//
// Precondition: reg and mgr must not be nil.
func LoadRegistry(reg *Registry, mgr *scripting.Manager, domainDir, scriptDir string, instLimit int) error {
	if scriptDir != "" {
		if err := mgr.LoadGlobal(scriptDir, instLimit); err != nil {
			return err
		}
	}
	domains, err := LoadDomains(domainDir)
	if err != nil {
		return err
	}
	for _, d := range domains {
		if err := reg.Register(d, mgr, d.ID); err != nil {
			return err
		}
	}
	return nil
}
