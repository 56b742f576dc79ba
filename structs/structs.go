package structs

// Position 描述游戏地图上的一个坐标位置，单位为像素，始终是格子大小的整数倍。
type Position struct {
	X int `json:"x"` // X坐标
	Y int `json:"y"` // Y坐标
}

// Add returns p moved by h scaled to tile units.
func (p Position) Add(h Heading, tileSize int) Position {
	return Position{X: p.X + h.X*tileSize, Y: p.Y + h.Y*tileSize}
}

// Heading 描述蛇的移动方向，单位向量或者静止 (0,0)。
type Heading struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	Still = Heading{0, 0}
	Up    = Heading{0, -1}
	Down  = Heading{0, 1}
	Left  = Heading{-1, 0}
	Right = Heading{1, 0}
)

// Reverse reports whether h points exactly opposite to other.
// A still heading is never the reverse of anything.
func (h Heading) Reverse(other Heading) bool {
	if h == Still || other == Still {
		return false
	}
	return h.X == -other.X && h.Y == -other.Y
}

// ItemType 物品类型
type ItemType int

const (
	RedFood ItemType = iota + 1
	GoldFood
	Poison
	SpeedBoost
	Slowdown
)

func (t ItemType) String() string {
	switch t {
	case RedFood:
		return "red_food"
	case GoldFood:
		return "gold_food"
	case Poison:
		return "poison"
	case SpeedBoost:
		return "speed_boost"
	case Slowdown:
		return "slowdown"
	default:
		return "unknown"
	}
}

// ParseItemType maps the name produced by String back to an ItemType.
func ParseItemType(name string) (ItemType, bool) {
	for _, t := range []ItemType{RedFood, GoldFood, Poison, SpeedBoost, Slowdown} {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// IsFood reports whether t belongs to the red/gold food pair.
func (t ItemType) IsFood() bool {
	return t == RedFood || t == GoldFood
}

// Item 地图上的物品，位置加类型
type Item struct {
	Position
	Type ItemType `json:"type"`
}

// PlayerSnapshot 单个玩家的只读视图
type PlayerSnapshot struct {
	Number  int        `json:"number"`  // 玩家编号，1 或 2
	Body    []Position `json:"body"`    // 蛇身，下标0为蛇头
	Heading Heading    `json:"heading"` // 当前方向
	Score   int        `json:"score"`
	Glowing bool       `json:"glowing"` // 吃了金色食物后的发光状态
}

// Snapshot 每帧交给渲染层的完整只读状态
type Snapshot struct {
	State       string           `json:"state"`
	Mode        string           `json:"mode"`
	Difficulty  string           `json:"difficulty"`
	Players     []PlayerSnapshot `json:"players"`
	Items       []Item           `json:"items"`
	Obstacles   []Position       `json:"obstacles"`
	Highscore   int              `json:"highscore"`
	GameOver    bool             `json:"game_over"`
	Paused      bool             `json:"paused"`
	GridEnabled bool             `json:"grid_enabled"`
	SpeedBoost  bool             `json:"speed_boost"`
	Slowdown    bool             `json:"slowdown"`
	DelayMS     int              `json:"delay_ms"` // 下一次刷新的间隔
}
