package register

import "sync"

type funcRegister struct {
	handlers map[any][]any
	locker   sync.Mutex
}

var fr *funcRegister

func init() {
	fr = &funcRegister{
		handlers: make(map[any][]any),
	}
}

// RegisterFunc 在 init 阶段登记回调，由使用方在启动时统一 resolve
func RegisterFunc[T any](key any, handler func(T)) {
	fr.locker.Lock()
	fr.handlers[key] = append(fr.handlers[key], handler)
	fr.locker.Unlock()
}

func ResolveFuncHandlers[T any](key any) []func(T) {
	fr.locker.Lock()
	defer fr.locker.Unlock()

	var res []func(T)
	for _, v := range fr.handlers[key] {
		if h, ok := v.(func(T)); ok {
			res = append(res, h)
		}
	}
	return res
}
