package interpret

type frame struct {
	categories map[rune]Category
	macros     map[string]Macro
	globalDefs bool
}

func newFrame(globalDefs bool) frame {
	return frame{
		categories: make(map[rune]Category),
		macros:     make(map[string]Macro),
		globalDefs: globalDefs,
	}
}

// Groups is the stack of lexical scopes. Index 0 is the root, which
// holds the primitives; lookups walk from the top of the stack down and
// fall back to the default category table.
type Groups struct {
	frames []frame
}

func NewGroups() *Groups {
	root := newFrame(false)
	for _, m := range primitiveMacros() {
		root.macros[m.Name] = m
	}
	return &Groups{frames: []frame{root}}
}

// Depth is the number of open groups above the root.
func (g *Groups) Depth() int {
	return len(g.frames) - 1
}

// Push opens a group. The new frame inherits the current global-defs
// flag by value.
func (g *Groups) Push() {
	g.frames = append(g.frames, newFrame(g.top().globalDefs))
}

// Pop closes the innermost group, discarding its assignments.
func (g *Groups) Pop() error {
	if len(g.frames) < 2 {
		return NewError(UNKNOWN_ERROR, "no groups left to pop")
	}
	g.frames = g.frames[:len(g.frames)-1]
	return nil
}

func (g *Groups) Category(char rune) Category {
	for i := len(g.frames) - 1; i >= 0; i-- {
		if category, ok := g.frames[i].categories[char]; ok {
			return category
		}
	}
	return DefaultCategory(char)
}

func (g *Groups) Macro(name string) (Macro, bool) {
	for i := len(g.frames) - 1; i >= 0; i-- {
		if m, ok := g.frames[i].macros[name]; ok {
			return m, true
		}
	}
	return Macro{}, false
}

// SetCategory assigns in the innermost group, or in the root when
// global is set or the innermost group has global-defs on.
func (g *Groups) SetCategory(char rune, category Category, global bool) {
	g.target(global).categories[char] = category
}

// SetMacro binds m under its name, with the same scoping as SetCategory.
func (g *Groups) SetMacro(m Macro, global bool) {
	g.target(global).macros[m.Name] = m
}

func (g *Groups) GlobalDefs() bool {
	return g.top().globalDefs
}

func (g *Groups) SetGlobalDefs(on bool) {
	g.top().globalDefs = on
}

func (g *Groups) top() *frame {
	return &g.frames[len(g.frames)-1]
}

func (g *Groups) target(global bool) *frame {
	if global || g.top().globalDefs {
		return &g.frames[0]
	}
	return g.top()
}
