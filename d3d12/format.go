package d3d12

// Format is a native pixel format. Values match the platform enumeration
// so a concrete binding can pass them through unchanged.
type Format uint32

const (
	FormatUnknown           Format = 0
	FormatR32G32B32A32Float Format = 2
	FormatR32G32B32Float    Format = 6
	FormatR16G16B16A16Float Format = 10
	FormatR32G32Float       Format = 16
	FormatR8G8B8A8Unorm     Format = 28
	FormatR8G8B8A8UnormSrgb Format = 29
	FormatR16G16Float       Format = 34
	FormatD32Float          Format = 40
	FormatR32Float          Format = 41
	FormatR32Uint           Format = 42
	FormatR32Sint           Format = 43
	FormatD24UnormS8Uint    Format = 45
	FormatR8G8Unorm         Format = 49
	FormatR16Float          Format = 54
	FormatD16Unorm          Format = 55
	FormatR16Uint           Format = 57
	FormatR8Unorm           Format = 61
	FormatR8Uint            Format = 62
	FormatR8Sint            Format = 64
	FormatBC1Unorm          Format = 71
	FormatBC1UnormSrgb      Format = 72
	FormatBC2Unorm          Format = 74
	FormatBC3Unorm          Format = 77
	FormatBC4Unorm          Format = 80
	FormatBC5Unorm          Format = 83
	FormatB8G8R8A8Unorm     Format = 87
	FormatB8G8R8A8UnormSrgb Format = 91
	FormatBC6HUfloat        Format = 95
	FormatBC7Unorm          Format = 98
)
