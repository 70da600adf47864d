package plugincopy

// Category is a kind of plugin asset folder, identified by the folder names
// plugins have historically used for it. Matching is case-sensitive.
type Category struct {
	Name    string
	Folders []string
}

var (
	Settings = Category{
		Name:    "settings",
		Folders: []string{"settings", "Settings", "config", "Config"},
	}
	Dependencies = Category{
		Name:    "dependencies",
		Folders: []string{"libs", "Libs", "lib", "Lib", "packages", "Packages"},
	}
	StaticFiles = Category{
		Name:    "static",
		Folders: []string{"images", "Images", "img", "Img", "static", "Static"},
	}
)

// Matches reports whether name is one of the category's folder names.
func (c Category) Matches(name string) bool {
	for _, f := range c.Folders {
		if f == name {
			return true
		}
	}
	return false
}
