package dolly

import (
	"go/build"
	"reflect"
	"runtime/debug"
	"strings"
	"sync"
)

// IsBuiltin reports whether t (or the type it points to) is defined by the
// Go standard library rather than by application code. Unnamed types such
// as *int or []string are not builtin, and neither is anything declared in
// package main or in a module of the running binary.
func IsBuiltin(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return isStdPackage(t.PkgPath())
}

var stdCache sync.Map // import path -> bool

// isStdPackage reports whether pkg is a standard library import path.
// The answer is cached per path.
func isStdPackage(pkg string) bool {
	if pkg == "" || pkg == "main" {
		return false
	}
	first, _, _ := strings.Cut(pkg, "/")
	if strings.Contains(first, ".") {
		return false
	}
	if cached, ok := stdCache.Load(pkg); ok {
		return cached.(bool)
	}
	std := !inBuildModules(pkg) && inGoroot(pkg)
	stdCache.Store(pkg, std)
	return std
}

// buildModules lists the main module and dependency paths recorded in the binary.
var buildModules = sync.OnceValue(func() []string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	mods := make([]string, 0, len(info.Deps)+1)
	if info.Main.Path != "" {
		mods = append(mods, info.Main.Path)
	}
	for _, dep := range info.Deps {
		mods = append(mods, dep.Path)
	}
	return mods
})

func inBuildModules(pkg string) bool {
	for _, mod := range buildModules() {
		if pkg == mod || strings.HasPrefix(pkg, mod+"/") {
			return true
		}
	}
	return false
}

// hasGorootSource reports whether the standard library sources can be located.
var hasGorootSource = sync.OnceValue(func() bool {
	p, err := build.Default.Import("sync", "", build.FindOnly)
	return err == nil && p.Goroot
})

// inGoroot reports whether pkg lives under GOROOT. Without GOROOT sources
// only the path shape is left to go on, so dot-less paths count as standard.
func inGoroot(pkg string) bool {
	if !hasGorootSource() {
		return true
	}
	p, err := build.Default.Import(pkg, "", build.FindOnly)
	return err == nil && p.Goroot
}

var lockerType = reflect.TypeOf((*sync.Locker)(nil)).Elem()

// isLock reports whether t is itself a lock: its pointer has Lock and Unlock.
func isLock(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(lockerType)
}

var lockCache sync.Map // reflect.Type -> string

// lockPath returns the path to a lock held by value inside t, or "" if t holds none.
// It mirrors go vet's copylocks check: such values must not be copied.
// The result is cached per type.
func lockPath(t reflect.Type) string {
	if cached, ok := lockCache.Load(t); ok {
		return cached.(string)
	}
	path := findLock(t)
	lockCache.Store(t, path)
	return path
}

func findLock(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Struct:
		if isLock(t) {
			return t.String()
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if p := findLock(f.Type); p != "" {
				return f.Name + "." + p
			}
		}
	case reflect.Array:
		if t.Len() > 0 {
			if p := findLock(t.Elem()); p != "" {
				return "[0]." + p
			}
		}
	}
	return ""
}
