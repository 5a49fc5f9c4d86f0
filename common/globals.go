package common

// EadkcVersion is the current eadkc version as a string.
const EadkcVersion string = "0.1.0"

// ConfigFileName is the name of the application configuration file.
const ConfigFileName string = "config.toml"

// IconArtifactExt is the extension of a compiled icon.
const IconArtifactExt string = ".nwi"

// IconArtifactPath is the default path of the compiled icon relative to the
// project root.
const IconArtifactPath string = "target/icon" + IconArtifactExt

// EntryDirective marks the function that becomes the application entry point.
const EntryDirective string = "//eadk:main"

// EntrySymbol is the unmangled symbol the loader calls.
const EntrySymbol string = "main"

// RuntimePackage is the default import path of the device runtime package
// referenced by generated code.
const RuntimePackage string = "github.com/numworks/eadk-go/eadk"

// Names of the generated output files.
const (
	GoOutputName  string = "eadk_app.go"
	IROutputName  string = "eadk_meta.ll"
	ObjOutputName string = "eadk_meta.o"
)

// Link sections read by the loader.  These names are part of the loader ABI.
const (
	AppNameSection  string = ".rodata.eadk_app_name"
	APILevelSection string = ".rodata.eadk_api_level"
	AppIconSection  string = ".rodata.eadk_app_icon"
)

// Symbols of the metadata globals.
const (
	AppNameSymbol  string = "EADK_APP_NAME"
	APILevelSymbol string = "EADK_APP_API_LEVEL"
	AppIconSymbol  string = "EADK_APP_ICON"
)

// Target description of the device.
const (
	TargetTriple     string = "thumbv7em-none-eabihf"
	TargetDataLayout string = "e-m:e-p:32:32-Fi8-i64:64-v128:64:128-a:0:32-n32-S64"
)
