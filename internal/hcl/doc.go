// Package hcl provides the HCL implementation of config.Loader. It discovers
// build files with a doublestar glob, parses them and translates every
// `target` block into the format-agnostic config model.
//
// A build file looks like:
//
//	target "net" {
//	  deps        = [":base", "//third_party/ssl"]
//	  sealed_deps = ["//tools:codegen"]
//	  includes    = ["include"]
//
//	  propagate {
//	    header = [file("net.h")]
//	  }
//	  direct_only {
//	    module_map = [file("module.modulemap")]
//	  }
//	}
//
// The package of a target is the directory of its build file relative to
// the workspace root.
package hcl
