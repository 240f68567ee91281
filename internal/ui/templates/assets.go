package templates

const styles = `
body { margin: 0; font-family: system-ui, sans-serif; background: #f8f9fa; color: #2c3e50; }
.layout { display: flex; min-height: 100vh; }
.sidebar { width: 280px; padding: 1rem; color: #fff; background: linear-gradient(180deg, #667eea 0%, #764ba2 100%); }
.sidebar fieldset { border: 1px solid rgba(255,255,255,.4); border-radius: 8px; margin: 1rem 0; }
.sidebar label { display: block; margin: .25rem 0; }
main { flex: 1; padding: 1rem 2rem; }
.main-header { font-size: 3rem; color: #1f77b4; text-align: center; margin-bottom: 2rem; }
.kpis { display: grid; grid-template-columns: repeat(5, 1fr); gap: 1rem; }
.metric-card { background: linear-gradient(90deg, #667eea 0%, #764ba2 100%); padding: 1rem; border-radius: 10px; color: #fff; text-align: center; }
.metric-value { font-size: 1.6rem; font-weight: bold; }
.section-header { font-size: 1.8rem; border-bottom: 2px solid #3498db; padding-bottom: .5rem; margin: 1.5rem 0; }
.chart-row { display: flex; gap: 1rem; flex-wrap: wrap; }
.chart-card { flex: 1 1 400px; background: #fff; border-radius: 8px; padding: .5rem; }
.summary-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; }
.summary-box { padding: 1rem; border-radius: 8px; }
.summary-box.info { background: #e8f4fd; }
.summary-box.success { background: #e9f7ef; }
.summary-box.warning { background: #fef5e7; }
.notice.error { padding: 1rem; border-radius: 8px; background: #fdecea; color: #b71c1c; }
.loading { text-align: center; font-style: italic; }
`

// chartScript turns chart definitions into Plotly figures. Containers with
// no chart in the current view are hidden.
const chartScript = `
(function () {
  function labels(s) { return s.points.map(function (p) { return p.label; }); }
  function values(s) { return s.points.map(function (p) { return p.value; }); }
  function first(c) { return (c.series && c.series[0]) || { name: "", points: [] }; }

  function traces(c) {
    var s = first(c);
    switch (c.kind) {
    case "line":
      return (c.series || []).map(function (s) {
        return { type: "scatter", mode: "lines+markers", name: s.name, x: labels(s), y: values(s) };
      });
    case "pie":
      return [{ type: "pie", labels: labels(s), values: values(s), hole: 0.4 }];
    case "bar":
      return [{ type: "bar", x: labels(s), y: values(s), marker: { color: values(s), colorscale: c.colorScale } }];
    case "hbar":
      return [{ type: "bar", orientation: "h", y: labels(s), x: values(s), marker: { color: values(s), colorscale: c.colorScale } }];
    case "histogram":
      return [{ type: "histogram", x: values(s), nbinsx: c.bins }];
    case "scatter":
      var max = 0;
      (c.series || []).forEach(function (s) { s.points.forEach(function (p) { max = Math.max(max, p.size || 0); }); });
      return (c.series || []).map(function (s) {
        return {
          type: "scatter", mode: "markers", name: s.name, text: labels(s),
          x: s.points.map(function (p) { return p.x || 0; }), y: values(s),
          marker: { size: s.points.map(function (p) { return max > 0 ? 6 + 34 * (p.size || 0) / max : 8; }) }
        };
      });
    case "treemap":
    case "sunburst":
      var tree = c.tree || [];
      return [{
        type: c.kind,
        ids: tree.map(function (n) { return n.id; }),
        labels: tree.map(function (n) { return n.label; }),
        parents: tree.map(function (n) { return n.parent; }),
        values: tree.map(function (n) { return n.value; }),
        marker: { colorscale: c.colorScale }
      }];
    case "heatmap":
      var m = c.matrix || { x: [], y: [], z: [] };
      return [{ type: "heatmap", x: m.x, y: m.y, z: m.z, colorscale: c.colorScale }];
    }
    return [];
  }

  window.renderCharts = function (charts) {
    if (!window.Plotly || !Array.isArray(charts)) { return; }
    var shown = {};
    charts.forEach(function (c) {
      var el = document.getElementById("chart-" + c.id);
      if (!el) { return; }
      shown[c.id] = true;
      el.parentElement.hidden = false;
      Plotly.react(el, traces(c), {
        title: c.title, height: c.height, showlegend: c.showLegend,
        xaxis: { title: c.xLabel || "" }, yaxis: { title: c.yLabel || "", tickformat: c.valueFormat ? c.valueFormat.replace("$", "") : "" },
        margin: { t: 48, l: 48, r: 16, b: 48 }
      }, { responsive: true, displayModeBar: false });
    });
    document.querySelectorAll("[data-chart]").forEach(function (el) {
      if (!shown[el.dataset.chart]) {
        Plotly.purge(el);
        el.parentElement.hidden = true;
      }
    });
  };
})();
`
