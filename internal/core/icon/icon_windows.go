//go:build windows

package icon

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modshell32 = windows.NewLazySystemDLL("shell32.dll")
	moduser32  = windows.NewLazySystemDLL("user32.dll")
	modgdi32   = windows.NewLazySystemDLL("gdi32.dll")

	procSHGetFileInfoW = modshell32.NewProc("SHGetFileInfoW")
	procSHGetImageList = modshell32.NewProc("SHGetImageList")
	procGetIconInfo    = moduser32.NewProc("GetIconInfo")
	procGetDC          = moduser32.NewProc("GetDC")
	procReleaseDC      = moduser32.NewProc("ReleaseDC")
	procDestroyIcon    = moduser32.NewProc("DestroyIcon")
	procGetObjectW     = modgdi32.NewProc("GetObjectW")
	procGetDIBits      = modgdi32.NewProc("GetDIBits")
	procDeleteObject   = modgdi32.NewProc("DeleteObject")
)

const (
	shgfiSysIconIndex = 0x4000
	shilExtraLarge    = 2
	ildTransparent    = 0x1
	biRGB             = 0
	dibRGBColors      = 0
)

// IID_IImageList {46EB5926-582E-4017-9FDF-E8998DAA0950}
var iidImageList = windows.GUID{
	Data1: 0x46eb5926,
	Data2: 0x582e,
	Data3: 0x4017,
	Data4: [8]byte{0x9f, 0xdf, 0xe8, 0x99, 0x8d, 0xaa, 0x09, 0x50},
}

type shFileInfo struct {
	Icon        windows.Handle
	IconIndex   int32
	Attributes  uint32
	DisplayName [260]uint16
	TypeName    [80]uint16
}

type iconInfo struct {
	Icon     int32
	XHotspot uint32
	YHotspot uint32
	Mask     windows.Handle
	Color    windows.Handle
}

type gdiBitmap struct {
	Type       int32
	Width      int32
	Height     int32
	WidthBytes int32
	Planes     uint16
	BitsPixel  uint16
	Bits       uintptr
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [3]uint32
}

type iImageList struct {
	vtbl *iImageListVtbl
}

type iImageListVtbl struct {
	QueryInterface  uintptr
	AddRef          uintptr
	Release         uintptr
	Add             uintptr
	ReplaceIcon     uintptr
	SetOverlayImage uintptr
	Replace         uintptr
	AddMasked       uintptr
	Draw            uintptr
	Remove          uintptr
	GetIcon         uintptr
}

func (l *iImageList) GetIcon(index int32, flags uint32) (windows.Handle, error) {
	var h windows.Handle
	hr, _, _ := syscall.SyscallN(l.vtbl.GetIcon,
		uintptr(unsafe.Pointer(l)), uintptr(index), uintptr(flags),
		uintptr(unsafe.Pointer(&h)))
	if hr != 0 {
		return 0, platformErr("IImageList.GetIcon", hresult(hr))
	}
	if h == 0 {
		return 0, platformErr("IImageList.GetIcon", fmt.Errorf("null icon handle"))
	}
	return h, nil
}

func (l *iImageList) Release() {
	_, _, _ = syscall.SyscallN(l.vtbl.Release, uintptr(unsafe.Pointer(l)))
}

func hresult(hr uintptr) error {
	return fmt.Errorf("HRESULT 0x%08x", uint32(hr))
}

func destroyIcon(h windows.Handle) {
	_, _, _ = procDestroyIcon.Call(uintptr(h))
}

func deleteObject(h windows.Handle) {
	_, _, _ = procDeleteObject.Call(uintptr(h))
}

func releaseDC(hdc uintptr) {
	_, _, _ = procReleaseDC.Call(0, hdc)
}

// shellResolver resolves through the shared shell icon cache: path to icon
// index, index to an extra-large HICON, HICON to top-down 32bpp DIB pixels.
// Every handle it acquires is released before Resolve returns, on success
// and on every failure path.
type shellResolver struct{}

func newPlatformResolver() Resolver { return shellResolver{} }

func (shellResolver) Resolve(path string) (Bitmap, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Bitmap{}, platformErr("UTF16PtrFromString", err)
	}

	var info shFileInfo
	ret, _, _ := procSHGetFileInfoW.Call(
		uintptr(unsafe.Pointer(p)), 0,
		uintptr(unsafe.Pointer(&info)), unsafe.Sizeof(info),
		shgfiSysIconIndex)
	if ret == 0 {
		return Bitmap{}, ErrIconUnavailable
	}

	var listPtr unsafe.Pointer
	hr, _, _ := procSHGetImageList.Call(
		shilExtraLarge,
		uintptr(unsafe.Pointer(&iidImageList)),
		uintptr(unsafe.Pointer(&listPtr)))
	if hr != 0 || listPtr == nil {
		return Bitmap{}, platformErr("SHGetImageList", hresult(hr))
	}
	list := (*iImageList)(listPtr)
	defer list.Release()

	hicon, err := list.GetIcon(info.IconIndex, ildTransparent)
	if err != nil {
		return Bitmap{}, err
	}
	defer destroyIcon(hicon)

	return iconPixels(hicon)
}

func iconPixels(hicon windows.Handle) (Bitmap, error) {
	var ii iconInfo
	ret, _, callErr := procGetIconInfo.Call(uintptr(hicon), uintptr(unsafe.Pointer(&ii)))
	if ret == 0 {
		return Bitmap{}, platformErr("GetIconInfo", callErr)
	}
	defer deleteObject(ii.Mask)
	defer deleteObject(ii.Color)

	var bm gdiBitmap
	ret, _, callErr = procGetObjectW.Call(uintptr(ii.Color), unsafe.Sizeof(bm), uintptr(unsafe.Pointer(&bm)))
	if ret == 0 {
		return Bitmap{}, platformErr("GetObjectW", callErr)
	}
	w, h := int(bm.Width), int(bm.Height)
	if w <= 0 || h <= 0 {
		return Bitmap{}, platformErr("GetObjectW", fmt.Errorf("bad bitmap %dx%d", w, h))
	}

	hdc, _, callErr := procGetDC.Call(0)
	if hdc == 0 {
		return Bitmap{}, platformErr("GetDC", callErr)
	}
	defer releaseDC(hdc)

	bi := bitmapInfo{Header: bitmapInfoHeader{
		Size:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		Width:       int32(w),
		Height:      -int32(h), // negative height requests top-down rows
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
	}}
	pix := make([]byte, w*h*4)
	ret, _, callErr = procGetDIBits.Call(hdc, uintptr(ii.Color), 0, uintptr(h),
		uintptr(unsafe.Pointer(&pix[0])), uintptr(unsafe.Pointer(&bi)), dibRGBColors)
	if ret == 0 {
		return Bitmap{}, platformErr("GetDIBits", callErr)
	}

	bgraToRGBA(pix)
	return Bitmap{Width: uint(w), Height: uint(h), Pix: pix}, nil
}
