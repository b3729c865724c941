package basket

import "basket3d/internal/scene"

// Entry is one item type: a name, a shape and a base color. Entries are read
// only and shared by every item drawn from them.
type Entry struct {
	Name     string
	Geometry scene.Geometry
	Color    scene.Color
}

func sphere(r float32, segs int) scene.Sphere {
	return scene.Sphere{Radius: r, WidthSegments: segs, HeightSegments: segs}
}

func cylinder(top, bottom, height float32, segs int) scene.Cylinder {
	return scene.Cylinder{RadiusTop: top, RadiusBottom: bottom, Height: height, RadialSegments: segs, HeightSegments: 1}
}

// FruitCatalog lists the produce drawn into the fruit basket.
var FruitCatalog = []Entry{
	{"apple", sphere(0.3, 12), 0xff0000},
	{"orange", sphere(0.25, 12), 0xffa500},
	{"avocado", sphere(0.35, 12), 0x228b22},
	{"grapes", sphere(0.12, 8), 0x800080},
	{"mango", sphere(0.4, 12), 0xffd700},
	{"banana", cylinder(0.08, 0.08, 0.7, 8), 0xffff00},
	{"strawberry", sphere(0.15, 8), 0xff1493},
	{"pear", sphere(0.28, 12), 0x90ee90},
	{"pineapple", cylinder(0.2, 0.25, 0.8, 8), 0xffd700},
	{"kiwi", sphere(0.2, 8), 0x228b22},
}

// VegetableCatalog lists the produce drawn into the vegetable basket.
var VegetableCatalog = []Entry{
	{"carrot", cylinder(0.1, 0.15, 0.9, 8), 0xff8c00},
	{"tomato", sphere(0.25, 12), 0xff4500},
	{"onion", sphere(0.22, 12), 0xfff8dc},
	{"potato", sphere(0.18, 8), 0xdeb887},
	{"cucumber", cylinder(0.08, 0.08, 0.8, 8), 0x228b22},
	{"bell_pepper", sphere(0.25, 12), 0xff6347},
	{"broccoli", sphere(0.3, 8), 0x228b22},
	{"cauliflower", sphere(0.28, 8), 0xf5f5dc},
	{"lettuce", sphere(0.35, 8), 0x90ee90},
	{"cabbage", sphere(0.32, 8), 0x228b22},
}

// FishCatalog lists the fish drawn into the fish basket. Each fish is a
// tapered cylinder, head wider than tail.
var FishCatalog = []Entry{
	{"salmon", cylinder(0.18, 0.1, 0.9, 8), 0xff6b6b},
	{"tuna", cylinder(0.15, 0.08, 0.8, 8), 0x4682b4},
	{"cod", cylinder(0.12, 0.06, 0.7, 8), 0x87ceeb},
	{"mackerel", cylinder(0.1, 0.05, 0.6, 8), 0x2f4f4f},
	{"sardine", cylinder(0.08, 0.04, 0.5, 8), 0x696969},
	{"trout", cylinder(0.13, 0.07, 0.75, 8), 0x20b2aa},
	{"sea_bass", cylinder(0.16, 0.09, 0.85, 8), 0x4682b4},
	{"red_snapper", cylinder(0.14, 0.07, 0.7, 8), 0xff6347},
}

// LeafCatalog and IceCatalog are the single-entry garnish catalogs.
var (
	LeafCatalog = []Entry{{"leaf", sphere(0.1, 4), 0x228b22}}
	IceCatalog  = []Entry{{"ice_cube", scene.Box{Width: 0.15, Height: 0.15, Depth: 0.15}, 0x87ceeb}}
)
