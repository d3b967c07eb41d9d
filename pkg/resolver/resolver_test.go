package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

func TestResolveSocket(t *testing.T) {
	tests := []struct {
		name string
		comp models.Component
		want string
	}{
		{
			name: "top level",
			comp: models.Component{Attributes: models.Fields{"socket": "AM4"}},
			want: "am4",
		},
		{
			name: "nested with spacing",
			comp: models.Component{Specs: models.Fields{"socket": "LGA 1700"}},
			want: "lga1700",
		},
		{
			name: "top level wins over specs",
			comp: models.Component{
				Attributes: models.Fields{"socket": "AM5"},
				Specs:      models.Fields{"socket": "AM4"},
			},
			want: "am5",
		},
		{
			name: "found in the product name",
			comp: models.Component{Name: "Ryzen 7 7700X (AM5)", Specs: models.Fields{"socket": "AM4"}},
			want: "am5",
		},
		{
			name: "found in type",
			comp: models.Component{Attributes: models.Fields{"type": "Socket LGA1200 board"}},
			want: "lga1200",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Resolve(&tt.comp, Socket)
			require.True(t, ok)
			assert.Equal(t, tt.want, v.Text)
		})
	}
}

func TestResolveMissing(t *testing.T) {
	c := &models.Component{Name: "Generic Board", Specs: models.Fields{"socket": "BGA"}}
	_, ok := Resolve(c, Socket)
	assert.False(t, ok)

	_, ok = Resolve(nil, Socket)
	assert.False(t, ok)

	_, ok = Resolve(&models.Component{Attributes: models.Fields{"wattage": ""}}, Wattage)
	assert.False(t, ok)
}

func TestResolveBrand(t *testing.T) {
	assert.Equal(t, "amd", Text(&models.Component{Brand: "AMD"}, Brand))
	assert.Equal(t, "intel", Text(&models.Component{Name: "Intel Core i5-13600K"}, Brand))
	assert.Equal(t, "", Text(&models.Component{Brand: "Corsair"}, Brand))
}

func TestResolveRAMTypeSkipsNonGenerations(t *testing.T) {
	c := &models.Component{
		Attributes: models.Fields{"type": "DIMM"},
		Specs:      models.Fields{"memory_type": "DDR5"},
	}
	assert.Equal(t, "DDR5", Text(c, RAMType))

	c = &models.Component{Attributes: models.Fields{"type": "DIMM"}}
	_, ok := Resolve(c, RAMType)
	assert.False(t, ok)
}

func TestResolveNumbers(t *testing.T) {
	c := &models.Component{
		Attributes: models.Fields{"wattage": "750 W"},
		Specs:      models.Fields{"length": 285.0, "ram_slots": "4"},
	}
	n, ok := Number(c, Wattage)
	require.True(t, ok)
	assert.Equal(t, 750.0, n)

	n, ok = Number(c, Length)
	require.True(t, ok)
	assert.Equal(t, 285.0, n)

	v, ok := Resolve(c, Slots)
	require.True(t, ok)
	i, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, 4, i)
}

func TestResolveUnknownAttribute(t *testing.T) {
	c := &models.Component{Specs: models.Fields{"color": "Black"}}
	assert.Equal(t, "Black", Text(c, Attribute("color")))
}

func TestResolveIsIdempotent(t *testing.T) {
	c := &models.Component{
		Name:       "ASUS TUF B550",
		Attributes: models.Fields{"socket": "AM4", "form_factor": "ATX"},
		Specs:      models.Fields{"chipset": "B550"},
	}
	for attr := range Rules {
		first, ok1 := Resolve(c, attr)
		second, ok2 := Resolve(c, attr)
		assert.Equal(t, ok1, ok2, attr)
		assert.Equal(t, first, second, attr)
	}
}

func TestMatchVocabulary(t *testing.T) {
	assert.Equal(t, "lga1700", MatchVocabulary("Intel LGA-1700", SocketVocabulary))
	assert.Equal(t, "", MatchVocabulary("", SocketVocabulary))
	assert.Equal(t, "", MatchVocabulary("sTRX4", SocketVocabulary))
}
