package invoker

import (
	"fmt"
	"os/exec"
)

// Имена внешних инструментов пайплайна.
const (
	ToolCutadapt = "cutadapt"
	ToolVsearch  = "vsearch"
	ToolFastp    = "fastp"
)

// RequiredTools возвращает список инструментов, без которых run невозможен.
// fastp опционален: QC-отчёты совещательные и образцы не гейтят.
func RequiredTools() []string {
	return []string{ToolCutadapt, ToolVsearch}
}

// CheckTools проверяет, что все перечисленные инструменты доступны на PATH.
//
// Выполняется один раз до планирования: отсутствие инструмента делает
// невозможным run целиком, а не отдельный образец, поэтому проверка
// не повторяется на каждом вызове.
func CheckTools(tools ...string) error {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%w: %s", ErrToolNotFound, tool)
		}
	}
	return nil
}

// HasTool возвращает true, если инструмент доступен на PATH.
func HasTool(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}
