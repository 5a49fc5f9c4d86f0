// Package layout computes the metadata blocks the loader reads from an
// application image.
//
// Each block is a fixed-layout byte region bound to a link section:
//   - AppName: the UTF-8 application name followed by one zero byte
//   - APILevel: the API level as a little-endian 32-bit unsigned integer
//   - AppIcon: the raw bytes of the compiled icon artifact
//
// The section names and sizes are part of the loader ABI.  Building the
// layout is pure: the same configuration always yields the same bytes.
package layout
