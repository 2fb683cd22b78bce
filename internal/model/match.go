package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchRecord 两种比赛记录变体的公共接口（封闭：仅 HalfMatch / BoxMatch 实现）
type MatchRecord interface {
	Variant() Variant
	RecordID() uint64
	MatchDate() string
	GroupKey() string
	// FieldValue 按列名取值，未知列返回 false
	FieldValue(column string) (interface{}, bool)
	isMatchRecord()
}

// 与列类型一致的长度/精度上限
const (
	NameMaxLen   = 128 // 赛事、球队、对手 varchar(128)
	StatusMaxLen = 64  // status varchar(64)
)

// 比赛格式（HalfMatch.Format）
const (
	FormatQuarters = "quarters"
	FormatHalves   = "halves"
)

// HalfMatch 分节比分记录。半场格式时上半场写入 q1，下半场写入 q4，q2/q3 为 0，
// 因此 q1+q2 恒为上半场、q3+q4 恒为下半场
type HalfMatch struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id,omitempty"`
	Date       string    `gorm:"column:date;type:varchar(32);not null;comment:比赛日期 DD.MM.YYYY" json:"date"`
	Tournament string    `gorm:"column:tournament;type:varchar(128);index;not null;comment:赛事名称" json:"tournament"`
	TeamHome   string    `gorm:"column:team_home;type:varchar(128);not null;comment:主队" json:"team_home"`
	TeamAway   string    `gorm:"column:team_away;type:varchar(128);not null;comment:客队" json:"team_away"`
	Format     string    `gorm:"column:format;type:varchar(16);not null;default:quarters;comment:quarters/halves" json:"format"`
	Q1Home     int       `gorm:"column:q1_home;type:int;not null;default:0" json:"q1_home"`
	Q1Away     int       `gorm:"column:q1_away;type:int;not null;default:0" json:"q1_away"`
	Q2Home     int       `gorm:"column:q2_home;type:int;not null;default:0" json:"q2_home"`
	Q2Away     int       `gorm:"column:q2_away;type:int;not null;default:0" json:"q2_away"`
	Q3Home     int       `gorm:"column:q3_home;type:int;not null;default:0" json:"q3_home"`
	Q3Away     int       `gorm:"column:q3_away;type:int;not null;default:0" json:"q3_away"`
	Q4Home     int       `gorm:"column:q4_home;type:int;not null;default:0" json:"q4_home"`
	Q4Away     int       `gorm:"column:q4_away;type:int;not null;default:0" json:"q4_away"`
	OTHome     int       `gorm:"column:ot_home;type:int;not null;default:0;comment:加时主队" json:"ot_home"`
	OTAway     int       `gorm:"column:ot_away;type:int;not null;default:0;comment:加时客队" json:"ot_away"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间" json:"created_at,omitzero"`
}

func (HalfMatch) TableName() string { return "halfs" }

func (m *HalfMatch) Variant() Variant  { return VariantHalfs }
func (m *HalfMatch) RecordID() uint64  { return m.ID }
func (m *HalfMatch) MatchDate() string { return m.Date }
func (m *HalfMatch) GroupKey() string  { return m.Tournament }
func (m *HalfMatch) isMatchRecord()    {}

// FirstHalf 上半场比分（主, 客）
func (m *HalfMatch) FirstHalf() (int, int) { return m.Q1Home + m.Q2Home, m.Q1Away + m.Q2Away }

// SecondHalf 下半场比分（主, 客）
func (m *HalfMatch) SecondHalf() (int, int) { return m.Q3Home + m.Q4Home, m.Q3Away + m.Q4Away }

func (m *HalfMatch) FieldValue(column string) (interface{}, bool) {
	switch column {
	case "id":
		return m.ID, true
	case "date":
		return m.Date, true
	case "tournament":
		return m.Tournament, true
	case "team_home":
		return m.TeamHome, true
	case "team_away":
		return m.TeamAway, true
	case "format":
		return m.Format, true
	case "q1_home":
		return m.Q1Home, true
	case "q1_away":
		return m.Q1Away, true
	case "q2_home":
		return m.Q2Home, true
	case "q2_away":
		return m.Q2Away, true
	case "q3_home":
		return m.Q3Home, true
	case "q3_away":
		return m.Q3Away, true
	case "q4_home":
		return m.Q4Home, true
	case "q4_away":
		return m.Q4Away, true
	case "ot_home":
		return m.OTHome, true
	case "ot_away":
		return m.OTAway, true
	}
	return nil, false
}

// BoxMatch 单队技术统计行，一场比赛由同赛事的 H、A 两行组成
type BoxMatch struct {
	ID             uint64           `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id,omitempty"`
	Date           string           `gorm:"column:date;type:varchar(32);not null;comment:比赛日期 DD.MM.YYYY" json:"date"`
	Tournament     string           `gorm:"column:tournament;type:varchar(128);index;not null;comment:赛事名称" json:"tournament"`
	Team           string           `gorm:"column:team;type:varchar(128);not null;comment:球队" json:"team"`
	HomeAway       string           `gorm:"column:home_away;type:varchar(2);comment:H/A" json:"home_away"`
	TwoPtMade      int              `gorm:"column:two_pt_made;type:int;not null;default:0" json:"two_pt_made"`
	TwoPtAttempt   int              `gorm:"column:two_pt_attempt;type:int;not null;default:0" json:"two_pt_attempt"`
	ThreePtMade    int              `gorm:"column:three_pt_made;type:int;not null;default:0" json:"three_pt_made"`
	ThreePtAttempt int              `gorm:"column:three_pt_attempt;type:int;not null;default:0" json:"three_pt_attempt"`
	FTAMade        int              `gorm:"column:fta_made;type:int;not null;default:0" json:"fta_made"`
	FTAAttempt     int              `gorm:"column:fta_attempt;type:int;not null;default:0" json:"fta_attempt"`
	OffRebound     int              `gorm:"column:off_rebound;type:int;not null;default:0" json:"off_rebound"`
	Turnovers      int              `gorm:"column:turnovers;type:int;not null;default:0" json:"turnovers"`
	Controls       decimal.Decimal  `gorm:"column:controls;type:numeric(10,2);not null;default:0;comment:控球回合" json:"controls"`
	Points         int              `gorm:"column:points;type:int;not null;default:0" json:"points"`
	Opponent       string           `gorm:"column:opponent;type:varchar(128);not null;comment:对手" json:"opponent"`
	AttakKef       *decimal.Decimal `gorm:"column:attak_kef;type:numeric(10,3);comment:进攻系数，空表示未提供" json:"attak_kef"`
	Status         string           `gorm:"column:status;type:varchar(64);not null;default:'';comment:备注" json:"status"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime;comment:创建时间" json:"created_at,omitzero"`
}

func (BoxMatch) TableName() string { return "cyber_matches" }

func (m *BoxMatch) Variant() Variant  { return VariantCyber }
func (m *BoxMatch) RecordID() uint64  { return m.ID }
func (m *BoxMatch) MatchDate() string { return m.Date }
func (m *BoxMatch) GroupKey() string  { return m.Tournament }
func (m *BoxMatch) isMatchRecord()    {}

func (m *BoxMatch) FieldValue(column string) (interface{}, bool) {
	switch column {
	case "id":
		return m.ID, true
	case "date":
		return m.Date, true
	case "tournament":
		return m.Tournament, true
	case "team":
		return m.Team, true
	case "home_away":
		return m.HomeAway, true
	case "two_pt_made":
		return m.TwoPtMade, true
	case "two_pt_attempt":
		return m.TwoPtAttempt, true
	case "three_pt_made":
		return m.ThreePtMade, true
	case "three_pt_attempt":
		return m.ThreePtAttempt, true
	case "fta_made":
		return m.FTAMade, true
	case "fta_attempt":
		return m.FTAAttempt, true
	case "off_rebound":
		return m.OffRebound, true
	case "turnovers":
		return m.Turnovers, true
	case "controls":
		return m.Controls, true
	case "points":
		return m.Points, true
	case "opponent":
		return m.Opponent, true
	case "attak_kef":
		if m.AttakKef == nil {
			return nil, true
		}
		return *m.AttakKef, true
	case "status":
		return m.Status, true
	}
	return nil, false
}
