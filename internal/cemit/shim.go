package cemit

import "fmt"

// runtimeShim is the compiler-synthesized runtime bridge every generated
// translation unit carries regardless of what the source program
// declares: `_R9init_argsZ`/`_R9drop_argsZ` build and free the
// `_R4core4ARGS` slice of runtime strings from the C argv.
// `_R4core4ARGS`, `_R4core4_str9from_cstrF` and `_R4core6_slice3setM` are
// assumed to exist in the linked runtime module — this emitter never
// defines them, only names them by their stable mangled identifiers.
const runtimeShim = `void _R9init_argsZ(i32 __argc, u8** __argv) {
  _R4core4ARGS = (_R4core6_slice){
    .ptr = malloc(sizeof(_R4core4_str) * __argc),
    .elem_size = sizeof(_R4core4_str), .len = __argc
  };
  for (int i = 0; i < __argc; i++) {
    u8* arg = __argv[i];
    _R4core4_str tmp = _R4core4_str9from_cstrF(arg);
    _R4core6_slice3setM(&_R4core4ARGS, i, &tmp);
  }
}

void _R9drop_argsZ(void) {
  free(_R4core4ARGS.ptr);
}
`

// mainText is the trailing generated `main`: it hands control to the
// runtime's stable entry point, passing the mangled package `main` as a
// function-pointer argument.
func (e *Emitter) mainText() string {
	return fmt.Sprintf(`int main(i32 __argc, char** __argv) {
  _R4core10rivet_mainF(__argc, (u8**)__argv, %s);
  return 0;
}
`, e.EntryPoint)
}
