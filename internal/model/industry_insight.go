package model

import (
	"time"

	"gorm.io/datatypes"
)

type DemandLevel string

const (
	DemandLow    DemandLevel = "LOW"
	DemandMedium DemandLevel = "MEDIUM"
	DemandHigh   DemandLevel = "HIGH"
)

type MarketOutlook string

const (
	OutlookNegative MarketOutlook = "NEGATIVE"
	OutlookNeutral  MarketOutlook = "NEUTRAL"
	OutlookPositive MarketOutlook = "POSITIVE"
)

// SalaryRange 行业岗位薪资区间
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// IndustryInsight 行业洞察聚合，按 Industry 键唯一、首次引用时以默认值惰性创建；
// 后台刷新进程（不在本服务内）负责在 NextUpdate 之前更新内容
// swagger:model IndustryInsight
type IndustryInsight struct {
	BaseModel
	Industry          string                           `gorm:"size:100;not null;uniqueIndex" json:"industry"`
	SalaryRanges      datatypes.JSONSlice[SalaryRange] `gorm:"type:json" json:"salaryRanges"`
	GrowthRate        float64                          `gorm:"default:0" json:"growthRate"`
	DemandLevel       DemandLevel                      `gorm:"size:10;default:'MEDIUM'" json:"demandLevel"`
	TopSkills         datatypes.JSONSlice[string]      `gorm:"type:json" json:"topSkills"`
	MarketOutlook     MarketOutlook                    `gorm:"size:10;default:'NEUTRAL'" json:"marketOutlook"`
	KeyTrends         datatypes.JSONSlice[string]      `gorm:"type:json" json:"keyTrends"`
	RecommendedSkills datatypes.JSONSlice[string]      `gorm:"type:json" json:"recommendedSkills"`
	NextUpdate        time.Time                        `json:"nextUpdate"`
}

func (IndustryInsight) TableName() string {
	return "industry_insights"
}

// NewDefaultInsight 以占位默认值创建一条行业洞察
func NewDefaultInsight(industry string) *IndustryInsight {
	return &IndustryInsight{
		Industry:          industry,
		SalaryRanges:      datatypes.JSONSlice[SalaryRange]{},
		GrowthRate:        0,
		DemandLevel:       DemandMedium,
		TopSkills:         datatypes.JSONSlice[string]{},
		MarketOutlook:     OutlookNeutral,
		KeyTrends:         datatypes.JSONSlice[string]{},
		RecommendedSkills: datatypes.JSONSlice[string]{},
		NextUpdate:        time.Now().Add(7 * 24 * time.Hour),
	}
}
