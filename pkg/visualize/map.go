package visualize

import (
	"fmt"
	"html/template"
	"io"
)

// worldCountriesURL serves a GeoJSON of the world countries, identified
// by their alpha-3 codes.
const worldCountriesURL = "https://raw.githubusercontent.com/python-visualization/folium/master/examples/data/world-countries.json"

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.info { position: fixed; bottom: 50px; left: 50px; width: 250px; border: 2px solid grey; z-index: 9999;
        font-size: 14px; background-color: white; padding: 10px; border-radius: 5px; }
.info h4 { margin-top: 0; }
.legend { background: white; padding: 6px 8px; line-height: 18px; font-family: arial; font-size: 12px; }
.legend i { width: 18px; height: 18px; float: left; margin-right: 8px; opacity: 0.7; }
</style>
</head>
<body>
<div id="map"></div>
<div class="info">
  <h4>Stargazer Statistics</h4>
  <b>Mapped Users:</b> {{.Mapped}} out of {{.Total}}<br>
  <b>Top 5 Countries:</b><br>
  {{range .Top}}&bull; {{.Name}}: {{.Count}}<br>
  {{end}}
</div>
<script>
var counts = {{.Counts}};
var max = {{.Max}};
var palette = ["#ffffb2", "#fed976", "#feb24c", "#fd8d3c", "#f03b20", "#bd0026"];

function color(count) {
  if (!count) { return "transparent"; }
  var idx = Math.min(palette.length - 1, Math.floor((count / max) * (palette.length - 1)));
  return palette[idx];
}

var map = L.map("map").setView([20, 0], 2);
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);

fetch({{.GeoJSONURL}}).then(function (response) { return response.json(); }).then(function (data) {
  L.geoJson(data, {
    style: function (feature) {
      return { fillColor: color(counts[feature.id]), weight: 1, opacity: 0.2, color: "black", fillOpacity: 0.7 };
    },
    onEachFeature: function (feature, layer) {
      layer.bindTooltip(feature.properties.name + ": " + (counts[feature.id] || 0));
    }
  }).addTo(map);
});

var legend = L.control({ position: "topright" });
legend.onAdd = function () {
  var div = L.DomUtil.create("div", "legend");
  div.innerHTML = "<b>Number of Stargazers</b><br>";
  for (var i = 0; i < palette.length; i++) {
    div.innerHTML += '<i style="background:' + palette[i] + '"></i> ' + Math.ceil(max * i / (palette.length - 1)) + "<br>";
  }
  return div;
};
legend.addTo(map);
</script>
</body>
</html>
`))

type mapData struct {
	Title      string
	Mapped     int
	Total      int
	Top        []CountryCount
	Counts     map[string]int
	Max        int
	GeoJSONURL string
}

// RenderMap writes a standalone HTML choropleth of the stargazers of each country.
func RenderMap(w io.Writer, l *Locator, counts *CountryCounts, title string) error {
	data := mapData{
		Title:      title,
		Mapped:     counts.Mapped,
		Total:      counts.Total,
		Top:        l.Top(counts, 5),
		Counts:     counts.Counts,
		Max:        1,
		GeoJSONURL: worldCountriesURL,
	}

	for _, count := range counts.Counts {
		if count > data.Max {
			data.Max = count
		}
	}

	if err := mapTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("unable to render map: %v", err)
	}

	return nil
}
