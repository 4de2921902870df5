package cfg

// SimplifyDeviation is the perpendicular distance below which an interior stroke
// point is considered jitter and dropped before cutting.
var SimplifyDeviation = 0.27

// OnEdgeTolerance is how close a stroke endpoint may get to the paper's outline
// before it counts as lying on the paper.
var OnEdgeTolerance = 1e-9

// CrossingTolerance ignores crossings found right at the start of a tracing hop,
// which are the crossing that started the hop seen again through rounding.
var CrossingTolerance = 1e-9

// LabelTolerance is the distance used to recognize fold and boundary edges when a
// saved shape is loaded back.
var LabelTolerance = 1e-6

// MinEdgeCount and MaxEdgeCount bound the supported number of symmetric wedges.
var MinEdgeCount = 3
var MaxEdgeCount = 64

// RasterScale is the number of raster pixels per length unit used when comparing polygons.
var RasterScale = 1.0

// CompareRadius is the number of raster pixels spanned by the basis radius when
// comparing shapes, whatever their size.
var CompareRadius = 256.0

// MaxRasterSize caps the width and height of a raster in pixels. Larger rasters
// are drawn at a lower scale.
var MaxRasterSize = 2048

// Plotter settings, used by the G-code exporter. Units are mm and mm/min.
var PlotterTravelRate = 10000.0
var PlotterFeedRate = 1500.0
var PlotterZFeedRate = 1500.0
var PlotterPenUpZ = 2.0
var PlotterCutZ = -2.0

// PlotterMinTravel is the distance under which the pen is not lifted between loops.
var PlotterMinTravel = 0.1
