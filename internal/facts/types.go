package facts

import "fmt"

// PathFragment is a relative or absolute path that is not itself a build
// file, such as an include search path.
type PathFragment string

func (p PathFragment) String() string {
	return string(p)
}

// Framework names a framework shipped with the platform SDK.
type Framework struct {
	Name string
}

func (f Framework) String() string {
	return f.Name
}

// BundleableFile is a file together with its location inside the final
// application bundle.
type BundleableFile struct {
	File       *Artifact
	BundlePath string
}

func (f BundleableFile) String() string {
	return fmt.Sprintf("%s -> %s", f.File.ExecPath(), f.BundlePath)
}

// CppModuleMap is a clang module map and the module name it declares.
type CppModuleMap struct {
	File *Artifact
	Name string
}

func (m CppModuleMap) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.File.ExecPath())
}

// Bundling describes a nested bundle that must be packaged inside the
// top-level one.
type Bundling struct {
	Name      string
	BundleDir string
}

func (b Bundling) String() string {
	return b.BundleDir + "/" + b.Name
}

// LibraryToLink is a C++ library handed to the linker.
type LibraryToLink struct {
	File       *Artifact
	AlwaysLink bool
}

func (l LibraryToLink) String() string {
	if l.AlwaysLink {
		return l.File.ExecPath() + " (alwayslink)"
	}
	return l.File.ExecPath()
}
