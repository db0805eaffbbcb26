package facts

import (
	"path"
	"sort"
	"sync"
)

// Artifact is an opaque handle to a file in the build. Two artifacts are the
// same file only if they are the same pointer; ArtifactFactory guarantees one
// pointer per exec path.
type Artifact struct {
	execPath string
}

// OpaqueHandle marks Artifact as exportable.
func (*Artifact) OpaqueHandle() {}

// ExecPath is the workspace-relative path of the file.
func (a *Artifact) ExecPath() string {
	if a == nil {
		return ""
	}
	return a.execPath
}

// Basename returns the last element of the exec path.
func (a *Artifact) Basename() string {
	return path.Base(a.ExecPath())
}

// Ext returns the file extension including the dot.
func (a *Artifact) Ext() string {
	return path.Ext(a.ExecPath())
}

func (a *Artifact) String() string {
	return "File:" + a.ExecPath()
}

// ArtifactFactory interns artifacts by exec path. It is safe for concurrent
// use by all analysis workers.
type ArtifactFactory struct {
	mu        sync.Mutex
	artifacts map[string]*Artifact
}

// NewArtifactFactory returns an empty factory.
func NewArtifactFactory() *ArtifactFactory {
	return &ArtifactFactory{artifacts: make(map[string]*Artifact)}
}

// Get returns the artifact for execPath, creating it on first use. The path
// is cleaned first so that "a/./b.h" and "a/b.h" are the same file.
func (f *ArtifactFactory) Get(execPath string) *Artifact {
	p := path.Clean(execPath)

	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.artifacts[p]; ok {
		return a
	}
	a := &Artifact{execPath: p}
	f.artifacts[p] = a
	return a
}

// Source returns the artifact for a file named relative to package pkg.
func (f *ArtifactFactory) Source(pkg, rel string) *Artifact {
	return f.Get(path.Join(pkg, rel))
}

// Len returns the number of distinct artifacts created so far.
func (f *ArtifactFactory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.artifacts)
}

// Paths returns every interned exec path, sorted.
func (f *ArtifactFactory) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.artifacts))
	for p := range f.artifacts {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
