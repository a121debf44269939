// Package ai implements the policies that drive non-player actors: the hostile
// melee chaser, the temporary confused wanderer, and an HTN planner whose
// method preconditions are Lua hooks.
//
// HTN planning decomposes abstract tasks into primitive operators via ordered methods.
// Operators map to dungeon actions (attack, approach, flee, wait).
package ai

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRoot is the task planning starts from when a domain names none.
const DefaultRoot = "behave"

// Task is an abstract goal that can be decomposed by methods.
type Task struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
}

// Method decomposes a task into an ordered list of subtasks or operator IDs.
// Precondition names a Lua hook; an empty Precondition always applies.
type Method struct {
	TaskID       string   `yaml:"task"`
	ID           string   `yaml:"id"`
	Precondition string   `yaml:"precondition"`
	Subtasks     []string `yaml:"subtasks"`
}

// Operator actions understood by HTNEnemy.
const (
	OpAttack   = "attack"
	OpApproach = "approach"
	OpFlee     = "flee"
	OpWait     = "wait"
)

// Operator targets resolved against the WorldState at planning time.
const (
	TargetNearestEnemy = "nearest_enemy"
	TargetWeakestEnemy = "weakest_enemy"
	TargetSelf         = "self"
)

// Operator is a primitive step that HTNEnemy turns into one dungeon action.
type Operator struct {
	ID     string `yaml:"id"`
	Action string `yaml:"action"`
	Target string `yaml:"target"`
}

// Domain is one monster behaviour loaded from YAML.
//
// Invariant: after Validate, IDs are unique per kind, the root task exists and
// every subtask names a task or an operator.
type Domain struct {
	ID          string      `yaml:"id"`
	Description string      `yaml:"description"`
	Root        string      `yaml:"root"`
	Tasks       []*Task     `yaml:"tasks"`
	Methods     []*Method   `yaml:"methods"`
	Operators   []*Operator `yaml:"operators"`
}

// RootTask returns the task planning starts from.
func (d *Domain) RootTask() string {
	if d.Root == "" {
		return DefaultRoot
	}
	return d.Root
}

// Validate reports every structural problem in d at once.
func (d *Domain) Validate() error {
	if d.ID == "" {
		return errors.New("ai.Domain: id must not be empty")
	}
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	tasks := make(map[string]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		switch {
		case t.ID == "":
			bad("task with empty id")
		case tasks[t.ID]:
			bad("duplicate task %q", t.ID)
		}
		tasks[t.ID] = true
	}
	if !tasks[d.RootTask()] {
		bad("root task %q is not declared", d.RootTask())
	}

	ops := make(map[string]bool, len(d.Operators))
	for _, op := range d.Operators {
		switch {
		case op.ID == "":
			bad("operator with empty id")
		case ops[op.ID]:
			bad("duplicate operator %q", op.ID)
		case tasks[op.ID]:
			bad("operator %q shadows a task", op.ID)
		}
		ops[op.ID] = true
		switch op.Action {
		case OpAttack, OpApproach, OpFlee, OpWait:
		default:
			bad("operator %q: unknown action %q", op.ID, op.Action)
		}
		switch op.Target {
		case "", TargetNearestEnemy, TargetWeakestEnemy, TargetSelf:
		default:
			bad("operator %q: unknown target %q", op.ID, op.Target)
		}
	}

	methods := make(map[string]bool, len(d.Methods))
	for _, m := range d.Methods {
		if m.ID == "" {
			bad("method with empty id")
		} else if methods[m.ID] {
			bad("duplicate method %q", m.ID)
		}
		methods[m.ID] = true
		if !tasks[m.TaskID] {
			bad("method %q: unknown task %q", m.ID, m.TaskID)
		}
		if len(m.Subtasks) == 0 {
			bad("method %q: no subtasks", m.ID)
		}
		for _, sub := range m.Subtasks {
			if !tasks[sub] && !ops[sub] {
				bad("method %q: subtask %q is neither a task nor an operator", m.ID, sub)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("ai.Domain %q: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// OperatorByID returns the operator with the given ID, or false if not found.
func (d *Domain) OperatorByID(id string) (*Operator, bool) {
	for _, op := range d.Operators {
		if op.ID == id {
			return op, true
		}
	}
	return nil, false
}

// MethodsForTask returns all methods that decompose taskID, in declaration order.
func (d *Domain) MethodsForTask(taskID string) []*Method {
	var out []*Method
	for _, m := range d.Methods {
		if m.TaskID == taskID {
			out = append(out, m)
		}
	}
	return out
}

type domainFile struct {
	Domain *Domain `yaml:"domain"`
}

// ParseDomain decodes and validates one domain document.
func ParseDomain(data []byte) (*Domain, error) {
	var f domainFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Domain == nil {
		return nil, errors.New("ai.ParseDomain: missing top-level domain key")
	}
	if err := f.Domain.Validate(); err != nil {
		return nil, err
	}
	return f.Domain, nil
}

// LoadDomains parses every *.yaml file in dir. A directory without YAML files
// yields no domains and no error.
func LoadDomains(dir string) ([]*Domain, error) {
	return LoadDomainsFS(os.DirFS(dir), ".")
}

// LoadDomainsFS is LoadDomains over an fs.FS, used for the embedded defaults.
func LoadDomainsFS(fsys fs.FS, dir string) ([]*Domain, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("ai.LoadDomains: reading %q: %w", dir, err)
	}
	var domains []*Domain
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai.LoadDomains: reading %s: %w", e.Name(), err)
		}
		d, err := ParseDomain(data)
		if err != nil {
			return nil, fmt.Errorf("ai.LoadDomains: %s: %w", e.Name(), err)
		}
		domains = append(domains, d)
	}
	return domains, nil
}
