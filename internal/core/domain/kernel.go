package domain

import "go.trai.ch/zerr"

// Kernel identifies the build backend variant a project declares. The set
// is closed; each variant maps to exactly one build-step implementation
// chosen at resolution time.
type Kernel uint8

const (
	// KernelNative builds with the local make/compiler toolchain.
	KernelNative Kernel = iota
	// KernelPackage builds a source distribution and wheel with the
	// language's packaging tool.
	KernelPackage
	// KernelCustom builds by invoking a user-declared external command.
	KernelCustom
)

// Descriptor keywords naming the kernels.
const (
	kernelNativeName  = "native"
	kernelPackageName = "package"
	kernelCustomName  = "custom"
)

// String returns the descriptor keyword for the kernel.
func (k Kernel) String() string {
	switch k {
	case KernelNative:
		return kernelNativeName
	case KernelPackage:
		return kernelPackageName
	case KernelCustom:
		return kernelCustomName
	default:
		return "unknown"
	}
}

// ParseKernel maps a descriptor keyword to its Kernel. The empty keyword
// defaults to KernelNative; anything unrecognized is fatal.
func ParseKernel(keyword string) (Kernel, error) {
	switch keyword {
	case "", kernelNativeName:
		return KernelNative, nil
	case kernelPackageName:
		return KernelPackage, nil
	case kernelCustomName:
		return KernelCustom, nil
	default:
		return KernelNative, zerr.With(zerr.Wrap(ErrUnknownKernel, "descriptor declares an unrecognized kernel keyword"), "kernel", keyword)
	}
}
