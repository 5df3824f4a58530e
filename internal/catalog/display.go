package catalog

const (
	defaultTypeColor = "#d3d3d3"
	defaultStatColor = "#6b7280"
)

var typeColors = map[string]string{
	"normal":   "#A8A77A",
	"fire":     "#EE8130",
	"water":    "#6390F0",
	"electric": "#F7D02C",
	"grass":    "#7AC74C",
	"ice":      "#96D9D6",
	"fighting": "#C22E28",
	"poison":   "#A33EA1",
	"ground":   "#E2BF65",
	"flying":   "#A98FF3",
	"psychic":  "#F95587",
	"bug":      "#A6B91A",
	"rock":     "#B6A136",
	"ghost":    "#735797",
	"dragon":   "#6F35FC",
	"dark":     "#705746",
	"steel":    "#B7B7CE",
	"fairy":    "#D685AD",
}

var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Special-Attack",
	"special-defense": "Special-Defense",
	"speed":           "Speed",
}

var statColors = map[string]string{
	"hp":              "#22c55e",
	"attack":          "#ef4444",
	"defense":         "#6b7280",
	"special-attack":  "#8b5cf6",
	"special-defense": "#06b6d4",
	"speed":           "#eab308",
}

// TypeColor 返回类型徽章的十六进制颜色，未知类型使用灰色。
func TypeColor(typeName string) string {
	if c, ok := typeColors[typeName]; ok {
		return c
	}
	return defaultTypeColor
}

// StatLabel 返回属性的展示名，未知属性原样返回。
func StatLabel(name string) string {
	if label, ok := statLabels[name]; ok {
		return label
	}
	return name
}

// StatColor 返回属性条颜色。
func StatColor(name string) string {
	if c, ok := statColors[name]; ok {
		return c
	}
	return defaultStatColor
}
