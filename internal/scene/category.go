package scene

// Category is a semantic scene label attached to a pixel by the upstream
// scene-understanding collaborator. Values match the platform's label bytes.
type Category uint8

const (
	CategorySky Category = iota + 1
	CategoryBuilding
	CategoryTree
	CategoryRoad
	CategorySidewalk
	CategoryTerrain
	CategoryStructure
	CategoryObject
	CategoryVehicle
	CategoryPerson
	CategoryWater
	CategoryUnlabeled
)

// CategoryFallback is used for label bytes the platform does not document.
// It is a ground-plane category, so unknown labels never produce obstacles.
const CategoryFallback = CategorySky

// Categories lists every known category in label order.
var Categories = []Category{
	CategorySky, CategoryBuilding, CategoryTree, CategoryRoad,
	CategorySidewalk, CategoryTerrain, CategoryStructure, CategoryObject,
	CategoryVehicle, CategoryPerson, CategoryWater, CategoryUnlabeled,
}

// CategoryFromLabel decodes a raw semantic label byte.
func CategoryFromLabel(b byte) Category {
	c := Category(b)
	if c < CategorySky || c > CategoryUnlabeled {
		return CategoryFallback
	}
	return c
}

// IsGroundPlane reports whether the category describes walkable ground or
// open sky. Such points never become obstacles.
func (c Category) IsGroundPlane() bool {
	switch c {
	case CategorySky, CategoryRoad, CategorySidewalk, CategoryTerrain, CategoryWater:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	switch c {
	case CategorySky:
		return "sky"
	case CategoryBuilding:
		return "building"
	case CategoryTree:
		return "tree"
	case CategoryRoad:
		return "road"
	case CategorySidewalk:
		return "sidewalk"
	case CategoryTerrain:
		return "terrain"
	case CategoryStructure:
		return "structure"
	case CategoryObject:
		return "object"
	case CategoryVehicle:
		return "vehicle"
	case CategoryPerson:
		return "person"
	case CategoryWater:
		return "water"
	case CategoryUnlabeled:
		return "unlabeled"
	default:
		return "unknown"
	}
}
