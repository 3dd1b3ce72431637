package domain

// CompilationUnit is a single submission to one back-end compiler: the set
// of files it will see, plus a record of which requested root(s) placed
// files into it. Paths is order-preserving (insertion order) so that two
// runs over the same plan always submit files to the wrapper in the same
// order, even though the underlying storage is a map.
type CompilationUnit struct {
	// Paths is the insertion-ordered list of absolute paths in this unit.
	Paths []string

	// Contents maps an absolute path (present in Paths) to its source text.
	Contents map[string]string

	// Roots is the insertion-ordered list of requested contract names whose
	// planning placed files into this unit. In batched mode a unit can have
	// many roots; in independent mode it always has exactly one.
	Roots []string
}

// NewCompilationUnit creates an empty unit.
func NewCompilationUnit() *CompilationUnit {
	return &CompilationUnit{Contents: make(map[string]string)}
}

// Add inserts a file into the unit if it is not already present. It is a
// no-op for a path already in the unit, which is what makes batched mode's
// "accumulate every file seen" behavior idempotent across roots that share
// imports.
func (u *CompilationUnit) Add(absolutePath, sourceText string) {
	if _, exists := u.Contents[absolutePath]; exists {
		return
	}
	u.Paths = append(u.Paths, absolutePath)
	u.Contents[absolutePath] = sourceText
}

// AddRoot records that the given requested contract name placed files into
// this unit, if it is not already recorded.
func (u *CompilationUnit) AddRoot(name string) {
	for _, r := range u.Roots {
		if r == name {
			return
		}
	}
	u.Roots = append(u.Roots, name)
}

// Size returns the number of distinct files in the unit, the quantity the
// artifact writer uses to arbitrate between redundant compilations of the
// same file (spec §4.H, "smallest unit wins").
func (u *CompilationUnit) Size() int {
	return len(u.Paths)
}

// Has reports whether absolutePath is a member of the unit.
func (u *CompilationUnit) Has(absolutePath string) bool {
	_, ok := u.Contents[absolutePath]
	return ok
}

// CompilationPlan maps a concrete compiler version string to the ordered
// sequence of compilation units submitted for that version. Version keys
// preserve first-insertion order so that the writer's "version keys in
// insertion order, units in index order" determinism guarantee (spec §5)
// holds without a separate sort pass.
type CompilationPlan struct {
	versions []string
	units    map[string][]*CompilationUnit
}

// NewCompilationPlan creates an empty plan.
func NewCompilationPlan() *CompilationPlan {
	return &CompilationPlan{units: make(map[string][]*CompilationUnit)}
}

// Versions returns the plan's version keys in insertion order.
func (p *CompilationPlan) Versions() []string {
	return p.versions
}

// UnitsFor returns the ordered units for a version, or nil if the version is
// not present in the plan.
func (p *CompilationPlan) UnitsFor(version string) []*CompilationUnit {
	return p.units[version]
}

// LastUnitFor returns the most recently appended unit for a version, or nil
// if the version has no units yet. Used by batched-mode planning to append
// into "the single (possibly already-nonempty) unit for that version".
func (p *CompilationPlan) LastUnitFor(version string) *CompilationUnit {
	units := p.units[version]
	if len(units) == 0 {
		return nil
	}
	return units[len(units)-1]
}

// AppendUnit adds a new unit to the end of a version's sequence, creating
// the version key if it is the first unit seen for it.
func (p *CompilationPlan) AppendUnit(version string, unit *CompilationUnit) {
	if _, exists := p.units[version]; !exists {
		p.versions = append(p.versions, version)
	}
	p.units[version] = append(p.units[version], unit)
}

// ImportRemappings maps a bare dependency prefix (e.g. "@foo/bar") to the
// resolved filesystem root where that package was found, shared by every
// unit of a run.
type ImportRemappings map[string]string
