package safe

import (
	"log/slog"
	"runtime/debug"
)

// Run 执行 f，捕获 panic 避免拖垮整个进程
func Run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()
	f()
}
