package transl

// The two dialects spell configuration keys, target names and the
// web-server template's attribute and section names differently; this
// table folds every spelling — long, short, English or Arabic — onto one
// canonical English term. The configuration loader and the Rust code
// generator both consult it.
// TODO: externalise the table to data files so adding a language
// binding stops requiring a rebuild.

var terms = map[string]string{
	// project metadata
	"name": "name",
	"اسم":  "name",

	// targets
	"rust":   "rust",
	"rs":     "rust",
	"راست":   "rust",
	"python": "python",
	"py":     "python",
	"بايثون": "python",

	// dependency sections and fields
	"deps":      "deps",
	"اعتماديات": "deps",
	"id":        "id",
	"معرف":      "id",
	"version":   "version",
	"v":         "version",
	"اصدار":     "version",
	"features":  "features",
	"f":         "features",
	"خصائص":     "features",

	// python-only dependency fields
	"py_path": "py_path",
	"مسار":    "py_path",
	"pkg_man": "pkg_man",
	"مدير":    "pkg_man",
	"install": "install",
	"i":       "install",
	"ثبت":     "install",

	// web-server template attribute and its sections
	"web_server": "web_server",
	"مخدم_شع":    "web_server",
	"settings":   "settings",
	"اعدادات":    "settings",
	"hostname":   "hostname",
	"مضيف":       "hostname",
	"port":       "port",
	"منفذ":       "port",
	"homepage":   "homepage",
	"رئيسية":     "homepage",
	"title":      "title",
	"عنوان":      "title",
	"content":    "content",
	"محتوى":      "content",
}

// Canon returns the canonical English term for a spelling in either
// dialect. ok is false for unknown terms.
func Canon(term string) (string, bool) {
	c, ok := terms[term]
	return c, ok
}

// Is reports whether term is a spelling of the canonical name.
func Is(term, canonical string) bool {
	c, ok := terms[term]
	return ok && c == canonical
}
