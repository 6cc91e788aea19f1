package popup

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// showCase is one request shape drawn by the property tests.
type showCase struct {
	name       string
	registered bool
	viewType   reflect.Type
	show       func(s *Service, args Arguments) error
}

var showCases = []showCase{
	{
		name:       "greeting",
		registered: true,
		viewType:   typeOf[*greetingPopup](),
		show: func(s *Service, args Arguments) error {
			return ShowWithArguments[*greetingViewModel](s, args)
		},
	},
	{
		name:       "settings",
		registered: true,
		viewType:   typeOf[*settingsPopup](),
		show: func(s *Service, args Arguments) error {
			return ShowWithArguments[*settingsViewModel](s, args)
		},
	},
	{
		name:       "unregistered",
		registered: false,
		show: func(s *Service, args Arguments) error {
			return ShowWithArguments[*unregisteredViewModel](s, args)
		},
	},
}

func TestProperty_ShowResolvesExactlyTheRegisteredView(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture()
		f.registerDefaults()

		requests := rapid.SliceOfN(rapid.SampledFrom(showCases), 1, 20).Draw(t, "requests")
		wantShown := 0
		for _, c := range requests {
			args := Arguments{}
			for k, v := range rapid.MapOf(rapid.String(), rapid.String()).Draw(t, "args") {
				args[k] = v
			}
			err := c.show(f.service, args)
			if !c.registered {
				if err == nil {
					t.Fatalf("%s: expected error for unregistered view-model", c.name)
				}
				continue
			}
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", c.name, err)
			}
			wantShown++
			calls := f.presenter.calls()
			last := calls[len(calls)-1]
			if got := reflect.TypeOf(last.view); got != c.viewType {
				t.Fatalf("%s: shown view %s, want %s", c.name, got, c.viewType)
			}
		}
		if got := len(f.presenter.calls()); got != wantShown {
			t.Fatalf("presenter saw %d shows, want %d", got, wantShown)
		}
	})
}

func TestProperty_ArgumentsDeliveredUnchangedOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture()
		f.registerDefaults()

		args := Arguments{}
		for k, v := range rapid.MapOf(rapid.String(), rapid.Int()).Draw(t, "args") {
			args[k] = v
		}

		if err := ShowWithArguments[*greetingViewModel](f.service, args); err != nil {
			t.Fatalf("show: %v", err)
		}
		vm := f.presenter.calls()[0].view.BindingContext().(*greetingViewModel)
		if vm.argsCalls != 1 {
			t.Fatalf("SetArguments called %d times", vm.argsCalls)
		}
		if reflect.ValueOf(vm.args).Pointer() != reflect.ValueOf(args).Pointer() {
			t.Fatal("view-model received a different map instance")
		}
		if !reflect.DeepEqual(map[string]any(vm.args), map[string]any(args)) {
			t.Fatal("arguments changed in transit")
		}
	})
}
