package fb

import (
	"slices"
	"testing"

	"github.com/bitkis/ruspiro-mailbox/internal/vcsim"
	rpitesting "github.com/bitkis/ruspiro-mailbox/testing"
	"github.com/bitkis/ruspiro-mailbox/vc/mbox"
	"github.com/bitkis/ruspiro-mailbox/vc/mbox/prop"
)

func TestMain(m *testing.M) { rpitesting.TestMain(m) }

func TestSetupBatch(t *testing.T) {
	b, err := setupBatch(Config{Width: 640, Height: 480, Depth: 32})
	if err != nil {
		t.Fatal(err)
	}

	want := []uint32{
		30 * 4, 0,
		0x0004_8003, 8, 0, 640, 480, // physical size
		0x0004_8004, 8, 0, 640, 480, // virtual size
		0x0004_8005, 4, 0, 32, // depth
		0x0004_8006, 4, 0, 1, // pixel order
		0x0004_0001, 8, 0, 4096, 0, // allocate
		0x0004_0008, 4, 0, 0, // pitch
		0,
	}
	if !slices.Equal(b.Words(), want) {
		t.Errorf("got words %#v", b.Words())
	}
}

func TestSetupBatchInvalid(t *testing.T) {
	if _, err := setupBatch(Config{Width: 640, Height: 480, Depth: 24}); err == nil {
		t.Error("depth 24 accepted")
	}
	if _, err := setupBatch(Config{Width: 0, Height: 480, Depth: 32}); err == nil {
		t.Error("zero width accepted")
	}
}

func grantedSim() *vcsim.Firmware {
	sim := vcsim.New()
	sim.Respond(prop.TagSetPhysicalSize, 640, 480)
	sim.Respond(prop.TagSetVirtualSize, 640, 480)
	sim.Respond(prop.TagSetDepth, 32)
	sim.Respond(prop.TagSetPixelOrder, 1)
	sim.Respond(prop.TagFBAllocate, 0xc010_0000, 640*480*4)
	sim.Respond(prop.TagGetPitch, 640*4)
	return sim
}

func TestDecode(t *testing.T) {
	b, err := setupBatch(Config{Width: 640, Height: 480, Depth: 32})
	if err != nil {
		t.Fatal(err)
	}
	if err := mbox.New(grantedSim()).Exchange(b); err != nil {
		t.Fatal(err)
	}

	m, err := decode(b)
	if err != nil {
		t.Fatal(err)
	}
	want := mode{
		width: 640, height: 480,
		depth: 32, order: 1,
		addr: 0xc010_0000, size: 640 * 480 * 4, pitch: 640 * 4,
	}
	if m != want {
		t.Errorf("got mode %+v", m)
	}
}

func TestDecodeUnusable(t *testing.T) {
	for _, tc := range []struct {
		name string
		mod  func(*vcsim.Firmware)
	}{
		{"zero pitch", func(sim *vcsim.Firmware) {
			sim.Respond(prop.TagGetPitch, 0)
		}},
		{"no buffer", func(sim *vcsim.Firmware) {
			sim.Respond(prop.TagFBAllocate, 0, 0)
		}},
		{"odd depth", func(sim *vcsim.Firmware) {
			sim.Respond(prop.TagSetDepth, 24)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sim := grantedSim()
			tc.mod(sim)

			b, err := setupBatch(Config{Width: 640, Height: 480, Depth: 32})
			if err != nil {
				t.Fatal(err)
			}
			if err := mbox.New(sim).Exchange(b); err != nil {
				t.Fatal(err)
			}
			if _, err := decode(b); err == nil {
				t.Error("unusable mode accepted")
			}
		})
	}
}
