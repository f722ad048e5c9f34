// Package linker implements the FSL function linker (spec.md §4.3):
// content-addressed renaming of every UDF to
// "<original_name>_<sha1-hex>", hashing the canonical printed form of
// the UDF's strongly connected component, and rewriting every reference
// to the old name — in other function bodies, role predicates, and role
// privilege resources — to the mangled form.
package linker

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/printer"
)

// funcEntry is one UDF's linking state: its declaration and the ordered
// (first-appearance, deduplicated) list of other UDF names its body
// references. Whether it has been mangled yet is tracked by Link's
// unlinked set and mangled map, not here.
type funcEntry struct {
	decl *ast.Declaration
	fn   *ast.FunctionDecl
	deps []string
}

// Link rewrites every UDF name in tree to its mangled form in place and
// returns the {original: mangled} map (spec.md §6.2's link_functions).
// Non-UDF declarations are untouched except for the role reference
// rewriting spec.md §4.3 requires.
func Link(tree *ast.SchemaTree) (map[string]string, error) {
	entries, names := collectFunctions(tree)

	unlinked := treeset.NewWithStringComparator()
	for _, n := range names {
		unlinked.Add(n)
	}
	mangled := make(map[string]string, len(names))

	for !unlinked.Empty() {
		progressed, err := linkLeaves(entries, unlinked, mangled)
		if err != nil {
			return nil, err
		}
		if progressed {
			continue
		}
		if unlinked.Empty() {
			break
		}
		cycles, err := detectCycles(entries, unlinked)
		if err != nil {
			return nil, err
		}
		for _, cycle := range cycles {
			if err := linkCycle(entries, cycle, mangled); err != nil {
				return nil, err
			}
			for _, n := range cycle {
				unlinked.Remove(n)
			}
		}
	}

	rewriteRoleReferences(tree, mangled)
	return mangled, nil
}

func collectFunctions(tree *ast.SchemaTree) (map[string]*funcEntry, []string) {
	entries := make(map[string]*funcEntry)
	var order []string
	for _, d := range tree.Declarations {
		if d.Kind != ast.DeclFunction {
			continue
		}
		entries[d.Function.Name.Text] = &funcEntry{decl: d, fn: d.Function}
		order = append(order, d.Function.Name.Text)
	}
	isUDF := make(map[string]bool, len(entries))
	for n := range entries {
		isUDF[n] = true
	}
	for _, n := range order {
		e := entries[n]
		e.deps = dependencyNames(e.fn.Body, isUDF)
	}
	return entries, order
}

// dependencyNames returns the deduplicated, first-appearance-ordered
// list of identifiers in body that name a known UDF.
func dependencyNames(body *ast.ExprBlob, isUDF map[string]bool) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, ref := range ast.WalkIdentifiers(body) {
		if !isUDF[ref.Text] || seen[ref.Text] {
			continue
		}
		seen[ref.Text] = true
		deps = append(deps, ref.Text)
	}
	return deps
}

// linkLeaves mangles every function in unlinked whose dependencies are
// all already mangled, visiting candidates in lexicographic order for
// determinism (spec.md §4.3.1). Returns whether any function was
// mangled this pass.
func linkLeaves(entries map[string]*funcEntry, unlinked *treeset.Set, mangled map[string]string) (bool, error) {
	progressed := false
	for {
		leaf := ""
		for _, v := range unlinked.Values() {
			name := v.(string)
			e := entries[name]
			if allMangled(e.deps, mangled) {
				leaf = name
				break
			}
		}
		if leaf == "" {
			return progressed, nil
		}
		if err := mangleOne(entries[leaf], mangled); err != nil {
			return progressed, err
		}
		unlinked.Remove(leaf)
		progressed = true
	}
}

func allMangled(deps []string, mangled map[string]string) bool {
	for _, d := range deps {
		if _, ok := mangled[d]; !ok {
			return false
		}
	}
	return true
}

// mangleOne rewrites e's references to already-mangled dependencies
// first, then hashes the post-rewrite canonical body, so that a
// dependency's mangled name (and thus its hash) propagates into its
// dependents' own hashes, per spec.md §4.3's Purpose clause.
func mangleOne(e *funcEntry, mangled map[string]string) error {
	ast.RewriteIdentifiers(e.fn.Body, mangled)
	body, err := canonicalFunction(e.decl)
	if err != nil {
		return err
	}
	hash := sha1.Sum([]byte(body))
	mangled[e.fn.Name.Text] = e.fn.Name.Text + "_" + hex.EncodeToString(hash[:])
	e.fn.Name.SetText(mangled[e.fn.Name.Text])
	return nil
}

// linkCycle hashes the concatenation of the cycle's canonical bodies
// (before any internal rewriting), pre-populates every member's mangled
// name, then rewrites all references — both to already-mangled leaves
// outside the cycle and to the cycle's own members — and renames every
// declaration.
func linkCycle(entries map[string]*funcEntry, cycle []string, mangled map[string]string) error {
	var concat string
	for _, name := range cycle {
		body, err := canonicalFunction(entries[name].decl)
		if err != nil {
			return err
		}
		concat += body
	}
	hash := sha1.Sum([]byte(concat))
	suffix := "_" + hex.EncodeToString(hash[:])
	for _, name := range cycle {
		mangled[name] = name + suffix
	}
	for _, name := range cycle {
		e := entries[name]
		ast.RewriteIdentifiers(e.fn.Body, mangled)
		e.fn.Name.SetText(mangled[name])
	}
	return nil
}

func canonicalFunction(decl *ast.Declaration) (string, error) {
	tmp := &ast.SchemaTree{Allocator: decl.Owner(), Declarations: []*ast.Declaration{decl}}
	text, err := printer.Print(tmp, printer.Options{})
	if err != nil {
		return "", fmt.Errorf("linker: canonical print failed for %q: %w", decl.Function.Name.Text, err)
	}
	return text, nil
}

// rewriteRoleReferences rewrites UDF references inside role privilege
// resources (exact match on resource text) and role predicate blobs
// (identifier scan), per spec.md §4.3's explicit requirement.
func rewriteRoleReferences(tree *ast.SchemaTree, mangled map[string]string) {
	for _, d := range tree.Declarations {
		if d.Kind != ast.DeclRole {
			continue
		}
		for _, m := range d.Role.Members {
			switch m.Kind {
			case ast.RoleMemberPrivilege:
				if newName, ok := mangled[m.Privilege.Resource.Text]; ok {
					m.Privilege.Resource.SetText(newName)
				}
				for _, a := range m.Privilege.Actions {
					ast.RewriteIdentifiers(a.Predicate, mangled)
				}
			case ast.RoleMemberMembership:
				ast.RewriteIdentifiers(m.Membership.Predicate, mangled)
			}
		}
	}
}
