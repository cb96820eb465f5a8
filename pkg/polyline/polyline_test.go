package polyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lejog-map/internal/domain"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    []domain.GeoPoint
		wantErr error
	}{
		{
			name:    "empty input decodes to empty sequence",
			encoded: "",
			want:    []domain.GeoPoint{},
		},
		{
			name:    "reference vector",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			want: []domain.GeoPoint{
				{38.5, -120.2},
				{40.7, -120.95},
				{43.252, -126.453},
			},
		},
		{
			name:    "truncated mid chunk",
			encoded: "_p~i",
			wantErr: ErrTruncated,
		},
		{
			name:    "truncated after latitude",
			encoded: "_p~iF",
			wantErr: ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.encoded)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i].Lat(), got[i].Lat(), 1e-5)
				assert.InDelta(t, tt.want[i].Lng(), got[i].Lng(), 1e-5)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	routes := [][]domain.GeoPoint{
		{},
		{{0, 0}},
		{{50.0657, -5.7147}, {50.1269, -5.5284}, {50.2660, -5.0527}},
		{{-33.8674, 151.2070}, {-33.8675, 151.2071}, {-33.9, 151.3}},
		{{89.99999, 179.99999}, {-89.99999, -179.99999}},
	}

	for _, route := range routes {
		encoded := Encode(route)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		require.Len(t, decoded, len(route))
		for i := range route {
			assert.InDelta(t, route[i].Lat(), decoded[i].Lat(), 1e-5)
			assert.InDelta(t, route[i].Lng(), decoded[i].Lng(), 1e-5)
		}
	}
}
