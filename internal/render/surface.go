package render

// Surface is the sink consumed by the animation engine's owner: it takes
// the slice list and the current rotation and produces pixels. The
// engine itself never calls it; the host reads the current rotation each
// frame and hands it here.
type Surface interface {
	Draw(slices []Slice, rotation float64) error
}
