package facts

import (
	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/nestedset"
)

// Registry holds every fact key. It is complete once the package is
// initialized.
var Registry = attrkey.NewRegistry()

var (
	// Library is a static library produced by a target.
	Library = attrkey.Register[*Artifact](Registry, "LIBRARY", nestedset.LinkOrder, attrkey.Exported("library"))

	ImportedLibrary = attrkey.Register[*Artifact](Registry, "IMPORTED_LIBRARY", nestedset.LinkOrder, attrkey.Exported("imported_library"))

	// LinkedBinary is a binary that this target's own binary links against
	// dynamically.
	LinkedBinary = attrkey.Register[*Artifact](Registry, "LINKED_BINARY", nestedset.Stable, attrkey.Exported("linked_binary"))

	// ForceLoadLibrary is linked with -force_load.
	ForceLoadLibrary = attrkey.Register[*Artifact](Registry, "FORCE_LOAD_LIBRARY", nestedset.LinkOrder, attrkey.Exported("force_load_library"))

	// ForceLoadForXcodegen is the Xcode-relative form of ForceLoadLibrary.
	ForceLoadForXcodegen = attrkey.Register[string](Registry, "FORCE_LOAD_FOR_XCODEGEN", nestedset.LinkOrder)

	Header = attrkey.Register[*Artifact](Registry, "HEADER", nestedset.Stable, attrkey.Exported("header"))
	Source = attrkey.Register[*Artifact](Registry, "SOURCE", nestedset.Stable, attrkey.Exported("source"))

	// Include and IncludeSystem are header search paths.
	Include       = attrkey.Register[PathFragment](Registry, "INCLUDE", nestedset.LinkOrder)
	IncludeSystem = attrkey.Register[PathFragment](Registry, "INCLUDE_SYSTEM", nestedset.LinkOrder)

	// Define is a preprocessor definition, NAME or NAME=VALUE.
	Define = attrkey.Register[string](Registry, "DEFINE", nestedset.Stable, attrkey.Exported("define"))

	AssetCatalog        = attrkey.Register[*Artifact](Registry, "ASSET_CATALOG", nestedset.Stable, attrkey.Exported("asset_catalog"))
	GeneralResourceFile = attrkey.Register[*Artifact](Registry, "GENERAL_RESOURCE_FILE", nestedset.Stable)
	GeneralResourceDir  = attrkey.Register[PathFragment](Registry, "GENERAL_RESOURCE_DIR", nestedset.Stable)
	BundleImportDir     = attrkey.Register[PathFragment](Registry, "BUNDLE_IMPORT_DIR", nestedset.Stable)
	BundleFile          = attrkey.Register[BundleableFile](Registry, "BUNDLE_FILE", nestedset.Stable)

	// XcassetsDir is the .xcassets directory of an asset catalog.
	XcassetsDir = attrkey.Register[PathFragment](Registry, "XCASSETS_DIR", nestedset.Stable)

	SdkDylib         = attrkey.Register[string](Registry, "SDK_DYLIB", nestedset.Stable, attrkey.Exported("sdk_dylib"))
	SdkFramework     = attrkey.Register[Framework](Registry, "SDK_FRAMEWORK", nestedset.Stable)
	WeakSdkFramework = attrkey.Register[Framework](Registry, "WEAK_SDK_FRAMEWORK", nestedset.Stable)
	Xcdatamodel      = attrkey.Register[*Artifact](Registry, "XCDATAMODEL", nestedset.Stable, attrkey.Exported("xcdatamodel"))

	FlagKey = attrkey.Register[Flag](Registry, "FLAG", nestedset.Stable)

	// ModuleMap is a clang module map. Only the direct dependents of the
	// declaring target should see it, so it is usually added DirectOnly.
	ModuleMap = attrkey.Register[*Artifact](Registry, "MODULE_MAP", nestedset.Stable, attrkey.Exported("module_map"))

	// TopLevelModuleMap is the module map of a top-level library; bundling
	// rules use it to assemble umbrella frameworks.
	TopLevelModuleMap = attrkey.Register[CppModuleMap](Registry, "TOP_LEVEL_MODULE_MAP", nestedset.Stable)

	// MergeZip is a zip whose contents are merged into the final bundle.
	MergeZip = attrkey.Register[*Artifact](Registry, "MERGE_ZIP", nestedset.Stable, attrkey.Exported("merge_zip"))

	// RootMergeZip is merged into the root of the final archive rather than
	// into the bundle.
	RootMergeZip = attrkey.Register[*Artifact](Registry, "ROOT_MERGE_ZIP", nestedset.Stable, attrkey.Exported("root_merge_zip"))

	FrameworkDir  = attrkey.Register[PathFragment](Registry, "FRAMEWORK_DIR", nestedset.LinkOrder)
	FrameworkFile = attrkey.Register[*Artifact](Registry, "FRAMEWORK_FILE", nestedset.Stable, attrkey.Exported("framework_file"))
	NestedBundle  = attrkey.Register[Bundling](Registry, "NESTED_BUNDLE", nestedset.Stable)

	DebugSymbols      = attrkey.Register[*Artifact](Registry, "DEBUG_SYMBOLS", nestedset.Stable, attrkey.Exported("debug_symbols"))
	DebugSymbolsPlist = attrkey.Register[*Artifact](Registry, "DEBUG_SYMBOLS_PLIST", nestedset.Stable, attrkey.Exported("debug_symbols_plist"))
	BreakpadFile      = attrkey.Register[*Artifact](Registry, "BREAKPAD_FILE", nestedset.Stable, attrkey.Exported("breakpad_file"))
	LinkmapFile       = attrkey.Register[*Artifact](Registry, "LINKMAP_FILE", nestedset.Stable)

	Storyboard = attrkey.Register[*Artifact](Registry, "STORYBOARD", nestedset.Stable, attrkey.Exported("storyboard"))
	Xib        = attrkey.Register[*Artifact](Registry, "XIB", nestedset.Stable, attrkey.Exported("xib"))
	Strings    = attrkey.Register[*Artifact](Registry, "STRINGS", nestedset.Stable, attrkey.Exported("strings"))

	CcLibrary = attrkey.Register[LibraryToLink](Registry, "CC_LIBRARY", nestedset.LinkOrder)

	// Linkopt is a raw linker option.
	Linkopt = attrkey.Register[string](Registry, "LINKOPT", nestedset.LinkOrder, attrkey.Exported("linkopt"))

	J2objcLibrary = attrkey.Register[*Artifact](Registry, "J2OBJC_LIBRARY", nestedset.LinkOrder, attrkey.Exported("j2objc_library"))
)
