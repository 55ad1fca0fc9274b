package identifier

import (
	"slices"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"VSSVehicleID", "vssVehicleID"},
		{"VehicleId", "vehicleId"},
		{"Vehicle", "vehicle"},
		{"IsOpen", "isOpen"},
		{"isOpen", "isOpen"},
		{"ABSIsActive", "absIsActive"},
		{"Row1", "row1"},
		{"VIN", "vin"},
		{"TraveledDistanceHighRes", "traveledDistanceHighRes"},
		{"X", "x"},
		{"EOBDVersion", "eobdVersion"},
		{"AverageSPEED", "averageSpeed"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Generate(tt.in)
		if got != tt.want {
			t.Errorf("Generate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateReservedCollision(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Children", "vssChildren"},
		{"Type", "vssType"},
		{"UUID", "vssUuid"},
		{"Parent", "vssParent"},
		{"Min", "vssMin"},
		{"Minimum", "minimum"},
	}
	for _, tt := range tests {
		got := Generate(tt.in)
		if got != tt.want {
			t.Errorf("Generate(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if IsReserved(got) {
			t.Errorf("Generate(%q) = %q is still reserved", tt.in, got)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, in := range []string{"VSSVehicleID", "Children", "CurrentLocation"} {
		first := Generate(in)
		for range 10 {
			if got := Generate(in); got != first {
				t.Fatalf("Generate(%q) changed: %q then %q", in, first, got)
			}
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"VSSVehicleID", []string{"VSS", "Vehicle", "ID"}},
		{"VehicleId", []string{"Vehicle", "Id"}},
		{"isOpen", []string{"is", "Open"}},
		{"ABC", []string{"ABC"}},
		{"Speed", []string{"Speed"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeneratorCustomReserved(t *testing.T) {
	g := Generator{Reserved: []string{"speed"}, Marker: "Sig"}
	if got := g.Generate("Speed"); got != "sigSpeed" {
		t.Errorf("Generate(Speed) = %q, want sigSpeed", got)
	}
	if got := g.Generate("Children"); got != "children" {
		t.Errorf("Generate(Children) = %q, want children", got)
	}
}
