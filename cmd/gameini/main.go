// FILE: lixenwraith/gameini/cmd/gameini/main.go
// Command gameini reads, edits and converts game INI files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/gameini"
	"gopkg.in/warnings.v0"
)

const usage = `usage: gameini <command> [flags] <file> [args]

<file> may also be a dedicated server directory; Game.ini is then looked up
under its Saved/Config/WindowsServer or LinuxServer directory.

commands:
  get <file> <section> <key>            print the lines stored under key
  set <file> <section> <key> <value>    store a value or comma list and save
  del <file> <section> [key]            delete a key, or the whole section
  fmt [-w] <file>                       print (or rewrite) canonical text
  check <file>                          report dropped lines and parse errors
  export [-format f] [-o out] <file>    convert to ini, toml, yaml or json
  watch [-poll d] <file>                log reloads until interrupted
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("gameini: ")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "get":
		err = runGet(args)
	case "set":
		err = runSet(args)
	case "del":
		err = runDel(args)
	case "fmt":
		err = runFmt(args)
	case "check":
		err = runCheck(args)
	case "export":
		err = runExport(args)
	case "watch":
		err = runWatch(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func needArgs(args []string, min, max int) error {
	if len(args) < min || len(args) > max {
		return fmt.Errorf("wrong number of arguments\n%s", usage)
	}
	return nil
}

// resolvePath accepts a settings file, or a dedicated server directory in
// which Game.ini is looked up under Saved/Config
func resolvePath(arg string) (string, error) {
	if info, err := os.Stat(arg); err != nil || !info.IsDir() {
		return arg, nil
	}
	opts := gameini.DefaultDiscoveryOptions(gameini.DefaultFileName)
	opts.EnvVar = ""
	opts.UseCurrentDir = false
	opts.Paths = []string{arg}
	opts.ServerRoot = arg
	return gameini.FindFile(opts)
}

// runCheck logs every dropped line and fails only on a fatal error
func runCheck(args []string) error {
	if err := needArgs(args, 1, 1); err != nil {
		return err
	}
	path, err := resolvePath(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	err = gameini.Check(string(data))
	for _, w := range warnings.WarningsOnly(err) {
		log.Printf("%s: warning: %v", path, w)
	}
	if fatal := gameini.FatalOnly(err); fatal != nil {
		return fmt.Errorf("%s: %w", path, fatal)
	}
	return nil
}

func runGet(args []string) error {
	if err := needArgs(args, 3, 3); err != nil {
		return err
	}
	path, err := resolvePath(args[0])
	if err != nil {
		return err
	}
	f, err := gameini.ParseFile(path)
	if err != nil {
		return err
	}
	e, err := f.GetEntry(args[1], args[2])
	if err != nil {
		return err
	}
	for _, line := range e.Lines() {
		fmt.Println(line)
	}
	return nil
}

// runSet parses the value with the same rules as the file itself, so
// "1,2,3" stores a comma list and "(A=1)" a struct.
func runSet(args []string) error {
	if err := needArgs(args, 4, 4); err != nil {
		return err
	}
	section, key, raw := args[1], args[2], args[3]
	path, err := resolvePath(args[0])
	if err != nil {
		return err
	}

	f, err := gameini.ParseFile(path)
	if err != nil {
		return err
	}
	snippet, err := gameini.ParseString("[" + section + "]\n" + key + "=" + raw)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", raw, err)
	}
	sec, err := snippet.Section(section)
	if err != nil || sec.Len() != 1 {
		return fmt.Errorf("invalid key %q", key)
	}

	switch e := sec.Entries()[0].(type) {
	case gameini.PlainEntry:
		err = f.SetValue(section, e.Name, e.Value)
	case gameini.CommaArrayEntry:
		err = f.SetArray(section, e.Name, e.Values...)
	default:
		// key[i] and key[name] forms update a single member
		target := f.GetOrCreateSection(section)
		if cur, getErr := target.GetEntry(e.Key()); getErr == nil && cur.Kind() == e.Kind() {
			err = mergeMember(target, cur, e)
		} else {
			err = target.AddEntry(e)
		}
	}
	if err != nil {
		return err
	}
	return f.Save(path)
}

func mergeMember(s *gameini.Section, cur, next gameini.Entry) error {
	switch c := cur.(type) {
	case gameini.IndexedArrayEntry:
		values := make(map[int32]gameini.Value, len(c.Values)+1)
		for idx, v := range c.Values {
			values[idx] = v
		}
		for idx, v := range next.(gameini.IndexedArrayEntry).Values {
			values[idx] = v
		}
		return s.SetIndexedArray(c.Name, values)
	case gameini.NamedMapEntry:
		values := append(append([]gameini.NamedValue(nil), c.Values...), next.(gameini.NamedMapEntry).Values...)
		return s.SetMap(c.Name, values...)
	}
	return fmt.Errorf("cannot update %s entry %q", cur.Kind(), cur.Key())
}

func runDel(args []string) error {
	if err := needArgs(args, 2, 3); err != nil {
		return err
	}
	path, err := resolvePath(args[0])
	if err != nil {
		return err
	}
	f, err := gameini.ParseFile(path)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		err = f.DeleteSection(args[1])
	} else {
		err = f.DeleteValue(args[1], args[2])
	}
	if err != nil {
		return err
	}
	return f.Save(path)
}

func runFmt(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	write := fs.Bool("w", false, "rewrite the file in place")
	fs.Parse(args)
	if err := needArgs(fs.Args(), 1, 1); err != nil {
		return err
	}

	path, err := resolvePath(fs.Arg(0))
	if err != nil {
		return err
	}
	f, err := gameini.ParseFile(path)
	if err != nil {
		return err
	}
	if *write {
		return f.Save(path)
	}
	_, err = f.WriteTo(os.Stdout)
	return err
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "", "output format: ini, toml, yaml or json (default from -o, else json)")
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)
	if err := needArgs(fs.Args(), 1, 1); err != nil {
		return err
	}

	path, err := resolvePath(fs.Arg(0))
	if err != nil {
		return err
	}
	f, err := gameini.ParseFile(path)
	if err != nil {
		return err
	}

	if *format == "" {
		*format = gameini.DetectFormat(*out)
	}
	if *format == "" {
		*format = gameini.FormatJSON
	}

	if *out == "" {
		return f.Export(os.Stdout, *format)
	}
	w, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := f.Export(w, *format); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	poll := fs.Duration("poll", gameini.DefaultPollInterval, "file poll interval")
	debounce := fs.Duration("debounce", gameini.DefaultDebounce, "change coalescence period")
	fs.Parse(args)
	if err := needArgs(fs.Args(), 1, 1); err != nil {
		return err
	}

	opts := gameini.DefaultWatchOptions()
	opts.PollInterval = *poll
	opts.Debounce = *debounce

	path, err := resolvePath(fs.Arg(0))
	if err != nil {
		return err
	}
	w, err := gameini.NewWatcher(path, opts)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := w.Subscribe()
	if err := w.Start(ctx); err != nil {
		return err
	}
	log.Printf("watching %s (%d sections), press Ctrl+C to exit", w.Path(), w.Current().Len())

	for {
		select {
		case <-ctx.Done():
			log.Println("shutting down")
			return nil
		case ev, ok := <-events:
			if !ok {
				return errors.New("watcher stopped")
			}
			logEvent(w, ev)
		}
	}
}

func logEvent(w *gameini.Watcher, ev gameini.Event) {
	stamp := time.Now().Format(time.TimeOnly)
	switch ev.Kind {
	case gameini.EventReloaded:
		if len(ev.Sections) == 0 {
			log.Printf("%s reloaded, no section changed", stamp)
			return
		}
		for _, name := range ev.Sections {
			if s, err := w.Current().Section(name); err == nil {
				log.Printf("%s changed:\n%s", stamp, s)
			} else {
				log.Printf("%s removed: [%s]", stamp, name)
			}
		}
	case gameini.EventReloadError, gameini.EventReloadTimeout:
		log.Printf("%s %s: %v", stamp, ev.Kind, ev.Err)
	default:
		log.Printf("%s %s", stamp, ev.Kind)
	}
}
