package gamemap

import (
	"railserver/models"
)

// 盤面は9x6のグリッド。隣接する接続点の間が敷設候補の区間になる
const (
	gridWidth  = 9
	gridHeight = 6
)

// PointPair は敷設候補の区間。Doubleなら2本のレールが必要
type PointPair struct {
	From   models.BoardPoint
	To     models.BoardPoint
	Double bool
}

// City は盤面上の1点に結びついた都市
type City struct {
	Name     string
	Color    string
	Position models.BoardPoint
}

// 目的都市の色グループ。プレイヤーは各グループから1都市ずつ目的地を引く
var CityColors = []string{"red", "yellow", "green", "blue", "purple"}

// 山岳・河川越えの区間はレール2本を要する
var doubleSegments = []models.RailSegment{
	{{4, 0}, {5, 0}},
	{{4, 1}, {5, 1}},
	{{4, 2}, {5, 2}},
	{{2, 3}, {2, 4}},
	{{3, 3}, {3, 4}},
	{{5, 3}, {5, 4}},
	{{6, 3}, {6, 4}},
	{{7, 4}, {7, 5}},
}

// Cities は全都市のリスト。色ごとに6都市あり、
// 6人のプレイヤーが互いに重複しない5都市を持てるだけの数がある
var Cities = []City{
	{Name: "London", Color: "red", Position: models.BoardPoint{0, 0}},
	{Name: "Amsterdam", Color: "red", Position: models.BoardPoint{2, 1}},
	{Name: "Hamburg", Color: "red", Position: models.BoardPoint{4, 0}},
	{Name: "Berlin", Color: "red", Position: models.BoardPoint{5, 1}},
	{Name: "Praha", Color: "red", Position: models.BoardPoint{6, 1}},
	{Name: "Warszawa", Color: "red", Position: models.BoardPoint{8, 0}},

	{Name: "Lisboa", Color: "yellow", Position: models.BoardPoint{0, 5}},
	{Name: "Sevilla", Color: "yellow", Position: models.BoardPoint{1, 5}},
	{Name: "Madrid", Color: "yellow", Position: models.BoardPoint{1, 4}},
	{Name: "Zaragoza", Color: "yellow", Position: models.BoardPoint{2, 4}},
	{Name: "Barcelona", Color: "yellow", Position: models.BoardPoint{3, 4}},
	{Name: "Bordeaux", Color: "yellow", Position: models.BoardPoint{2, 3}},

	{Name: "Paris", Color: "green", Position: models.BoardPoint{2, 2}},
	{Name: "Bruxelles", Color: "green", Position: models.BoardPoint{3, 1}},
	{Name: "Strasbourg", Color: "green", Position: models.BoardPoint{4, 2}},
	{Name: "Lyon", Color: "green", Position: models.BoardPoint{3, 3}},
	{Name: "Geneve", Color: "green", Position: models.BoardPoint{4, 3}},
	{Name: "Marseille", Color: "green", Position: models.BoardPoint{4, 4}},

	{Name: "Munchen", Color: "blue", Position: models.BoardPoint{5, 2}},
	{Name: "Wien", Color: "blue", Position: models.BoardPoint{6, 2}},
	{Name: "Budapest", Color: "blue", Position: models.BoardPoint{8, 2}},
	{Name: "Zagreb", Color: "blue", Position: models.BoardPoint{6, 3}},
	{Name: "Beograd", Color: "blue", Position: models.BoardPoint{8, 4}},
	{Name: "Bucuresti", Color: "blue", Position: models.BoardPoint{8, 5}},

	{Name: "Milano", Color: "purple", Position: models.BoardPoint{5, 3}},
	{Name: "Torino", Color: "purple", Position: models.BoardPoint{5, 4}},
	{Name: "Venezia", Color: "purple", Position: models.BoardPoint{6, 4}},
	{Name: "Roma", Color: "purple", Position: models.BoardPoint{6, 5}},
	{Name: "Napoli", Color: "purple", Position: models.BoardPoint{7, 5}},
	{Name: "Palermo", Color: "purple", Position: models.BoardPoint{5, 5}},
}

// Points は盤面の全接続点
var Points []models.BoardPoint

// PointPairs は敷設候補の全区間
var PointPairs []PointPair

func init() {
	for y := 0; y < gridHeight; y++ {
		for x := 0; x < gridWidth; x++ {
			Points = append(Points, models.BoardPoint{x, y})
		}
	}

	// 右隣と下隣を結ぶ区間を候補として張る
	for _, p := range Points {
		if p[0]+1 < gridWidth {
			right := models.BoardPoint{p[0] + 1, p[1]}
			PointPairs = append(PointPairs, PointPair{From: p, To: right, Double: isDouble(p, right)})
		}
		if p[1]+1 < gridHeight {
			down := models.BoardPoint{p[0], p[1] + 1}
			PointPairs = append(PointPairs, PointPair{From: p, To: down, Double: isDouble(p, down)})
		}
	}
}

func isDouble(a, b models.BoardPoint) bool {
	for _, seg := range doubleSegments {
		if SameSegment(seg, models.RailSegment{a, b}) {
			return true
		}
	}
	return false
}

// SamePoint は2つの接続点が同じ座標かどうかを返す
func SamePoint(a, b models.BoardPoint) bool {
	return a[0] == b[0] && a[1] == b[1]
}

// SameSegment は2つの区間が同じかどうかを返す。向きは区別しない
func SameSegment(a, b models.RailSegment) bool {
	if SamePoint(a[0], b[0]) && SamePoint(a[1], b[1]) {
		return true
	}
	return SamePoint(a[0], b[1]) && SamePoint(a[1], b[0])
}

// PieceCost は区間の敷設に必要なレール数を返す。
// 候補に存在しない区間の場合は ok=false
func PieceCost(rail models.RailSegment) (int, bool) {
	for _, pair := range PointPairs {
		if SameSegment(models.RailSegment{pair.From, pair.To}, rail) {
			if pair.Double {
				return 2, true
			}
			return 1, true
		}
	}
	return 0, false
}

// CandidateSegments は候補区間を向きなしの区間リストとして返す
func CandidateSegments() []models.RailSegment {
	segments := make([]models.RailSegment, len(PointPairs))
	for i, pair := range PointPairs {
		segments[i] = models.RailSegment{pair.From, pair.To}
	}
	return segments
}

// CityByName は都市名から都市を引く
func CityByName(name string) (City, bool) {
	for _, city := range Cities {
		if city.Name == name {
			return city, true
		}
	}
	return City{}, false
}

// IsVertex は座標が盤面上の接続点かどうかを返す
func IsVertex(p models.BoardPoint) bool {
	return p[0] >= 0 && p[0] < gridWidth && p[1] >= 0 && p[1] < gridHeight
}
