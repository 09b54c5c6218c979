// Package progression 课程模块解锁与完成度计算。
//
// 所有函数都是纯函数：输入的课程不会被修改，需要变更时返回新的快照。
package progression

import (
	"math"
	"sort"

	"training_portal_backend/internal/model"
)

// 需要先在查看器中选中才能手动完成的模块类型
var selectionRequired = map[model.ModuleType]bool{
	model.ModuleVideo:        true,
	model.ModuleReading:      true,
	model.ModulePresentation: true,
}

// Outcome MarkComplete 的结果
type Outcome struct {
	Found           bool
	Locked          bool
	Changed         bool
	CourseCompleted bool
}

func find(modules []model.CourseModule, moduleID uint) (int, bool) {
	for i := range modules {
		if modules[i].ID == moduleID {
			return i, true
		}
	}
	return -1, false
}

// IsModuleLocked 存在 order 更小且未完成的模块时返回 true；模块不存在返回 false
func IsModuleLocked(course model.Course, moduleID uint) bool {
	idx, ok := find(course.Modules, moduleID)
	if !ok {
		return false
	}
	target := course.Modules[idx].Order
	for _, m := range course.Modules {
		if m.Order < target && !m.IsCompleted {
			return true
		}
	}
	return false
}

// CompletionRate round(100 * completed / total)，没有模块时为 0
func CompletionRate(modules []model.CourseModule) int {
	if len(modules) == 0 {
		return 0
	}
	completed := 0
	for _, m := range modules {
		if m.IsCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) * 100 / float64(len(modules))))
}

func allCompleted(modules []model.CourseModule) bool {
	if len(modules) == 0 {
		return false
	}
	for _, m := range modules {
		if !m.IsCompleted {
			return false
		}
	}
	return true
}

// MarkComplete 标记模块完成并重新计算完成度。
// 模块不存在或仍被锁定时返回原课程的副本。
func MarkComplete(course model.Course, moduleID uint) (model.Course, Outcome) {
	next := course.Clone()
	idx, ok := find(next.Modules, moduleID)
	if !ok {
		return next, Outcome{}
	}
	if IsModuleLocked(next, moduleID) {
		return next, Outcome{Found: true, Locked: true}
	}

	out := Outcome{Found: true}
	if !next.Modules[idx].IsCompleted {
		next.Modules[idx].IsCompleted = true
		out.Changed = true
	}
	next.CompletionRate = CompletionRate(next.Modules)
	out.CourseCompleted = out.Changed && allCompleted(next.Modules)
	return next, out
}

// CanManuallyComplete 视频、阅读、演示类模块必须是当前选中的模块；测验和作业随时可完成
func CanManuallyComplete(course model.Course, moduleID, activeModuleID uint) bool {
	idx, ok := find(course.Modules, moduleID)
	if !ok {
		return false
	}
	if !selectionRequired[course.Modules[idx].Type] {
		return true
	}
	return activeModuleID != 0 && activeModuleID == moduleID
}

// ReorderAfterRemoval 按当前顺序重新编号为 1..n
func ReorderAfterRemoval(modules []model.CourseModule) []model.CourseModule {
	out := make([]model.CourseModule, len(modules))
	copy(out, modules)
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

// RemoveModule 删除模块并保持 order 连续；模块不存在时仅返回副本
func RemoveModule(modules []model.CourseModule, moduleID uint) []model.CourseModule {
	kept := make([]model.CourseModule, 0, len(modules))
	for _, m := range modules {
		if m.ID != moduleID {
			kept = append(kept, m)
		}
	}
	return ReorderAfterRemoval(kept)
}

// AppendModule 追加到末尾，order = len + 1
func AppendModule(modules []model.CourseModule, m model.CourseModule) []model.CourseModule {
	out := make([]model.CourseModule, len(modules), len(modules)+1)
	copy(out, modules)
	m.Order = len(modules) + 1
	return append(out, m)
}

// SortByOrder 返回按 order 升序的副本
func SortByOrder(modules []model.CourseModule) []model.CourseModule {
	out := make([]model.CourseModule, len(modules))
	copy(out, modules)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// TotalDurationHours 模块总时长（小时，保留一位小数）
func TotalDurationHours(modules []model.CourseModule) float64 {
	minutes := 0
	for _, m := range modules {
		minutes += m.Duration
	}
	return math.Round(float64(minutes)/60*10) / 10
}

// Neighbours 按 order 查找前后模块
func Neighbours(course model.Course, moduleID uint) (prev, next *model.CourseModule) {
	sorted := SortByOrder(course.Modules)
	idx, ok := find(sorted, moduleID)
	if !ok {
		return nil, nil
	}
	if idx > 0 {
		p := sorted[idx-1]
		prev = &p
	}
	if idx < len(sorted)-1 {
		n := sorted[idx+1]
		next = &n
	}
	return prev, next
}
