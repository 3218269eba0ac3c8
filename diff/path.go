package diff

import (
	"fmt"
	"reflect"
	"strconv"
)

const rootPath = "root"

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func keyPath(parent string, key reflect.Value) string {
	for key.Kind() == reflect.Interface && !key.IsNil() {
		key = key.Elem()
	}
	if key.Kind() == reflect.String {
		return parent + "['" + key.String() + "']"
	}
	if key.IsValid() && key.CanInterface() {
		return parent + "[" + fmt.Sprint(key.Interface()) + "]"
	}
	return parent + "[?]"
}

func fieldPath(parent, name string) string {
	return parent + "." + name
}
