package htmldoc

const indexTemplate = `{{define "index"}}
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>{{.Config.ProjectName}} Config Schemas</title>
	<link rel="stylesheet" href="site.css">
</head>
<body>
	<main class="content">
		<div class="page-header">
			<h1>{{.Config.ProjectName}} Config Schemas</h1>
			<p class="description">{{.Config.ProjectDescription}}</p>
		</div>
		<div class="section">
			<h2>Schemas</h2>
			<ul class="nav-list">
				{{range .Schemas}}
				<li><a href="{{.Href}}">{{.Name}}</a></li>
				{{end}}
			</ul>
		</div>
	</main>
</body>
</html>
{{end}}`

const pageTemplate = `{{define "page"}}
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>{{.DisplayPath}} - {{.SchemaName}}</title>
	<link rel="stylesheet" href="site.css">
</head>
<body>
	<main class="content">
		<div class="page-header">
			<h1>{{.DisplayPath}}</h1>
			{{if .Placeholder}}<p class="description">Dynamic key: <code>{{.Placeholder}}</code></p>{{end}}
			<a href="index.html">&larr; back to schemas</a>
		</div>

		<div class="section">
			<h2>Structure</h2>
			<div class="structure-graph" data-graph="{{json .Graph}}"></div>
		</div>

		<div class="section">
			<h2>Keys</h2>
			<table class="keys-table">
				<thead>
					<tr>
						<th>Key</th>
						<th>Type</th>
						<th>Required</th>
						<th>Default</th>
						<th>Annotations</th>
					</tr>
				</thead>
				<tbody>
					{{range .Rows}}
					<tr id="{{.Anchor}}">
						<td><code>{{.Name}}</code></td>
						<td>
							<code>{{.TypeLabel}}</code>
							{{range .Badges}}<span class="badge">{{.}}</span>{{end}}
							{{if .LinkHref}}<a class="table-link" href="{{.LinkHref}}">&rarr;</a>{{end}}
						</td>
						<td>{{if .Required}}yes{{else}}no{{end}}</td>
						<td><code>{{.Default}}</code></td>
						<td>{{range .Annotations}}<span class="chip">{{.}}</span>{{end}}</td>
					</tr>
					{{end}}
				</tbody>
			</table>
		</div>

		{{if .Constraints}}
		<div class="section">
			<h2>Constraints</h2>
			<ul class="constraints-list">
				{{range .Constraints}}<li><code>{{.}}</code></li>{{end}}
			</ul>
		</div>
		{{end}}

		{{if .IsRoot}}
		<div class="section">
			<h2>Source</h2>
			<pre><code>{{.Source}}</code></pre>
		</div>
		{{end}}
	</main>
	<script src="site.js"></script>
</body>
</html>
{{end}}`

const siteCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; line-height: 1.6; color: #222; }
.content { max-width: 960px; margin: 0 auto; padding: 40px 20px; }
.page-header { margin-bottom: 30px; border-bottom: 2px solid #3b6ea5; padding-bottom: 16px; }
.section { margin-bottom: 32px; }
.keys-table { width: 100%; border-collapse: collapse; }
.keys-table th, .keys-table td { padding: 8px 12px; text-align: left; border-bottom: 1px solid #ddd; }
.badge, .chip { display: inline-block; font-size: 11px; padding: 1px 6px; border-radius: 3px; margin-left: 4px; background: #eef3fa; color: #2c3e50; }
.table-link { margin-left: 6px; }
pre { background: #1e2430; color: #e6e6e6; padding: 16px; overflow-x: auto; border-radius: 4px; }
.structure-graph { min-height: 60px; border: 1px dashed #ccc; border-radius: 4px; padding: 12px; }
`

const siteJS = `
document.addEventListener('DOMContentLoaded', function () {
	document.querySelectorAll('.structure-graph').forEach(function (el) {
		var graph;
		try {
			graph = JSON.parse(el.getAttribute('data-graph'));
		} catch (e) {
			return;
		}
		renderLevel(el, [graph], 0);
	});

	function renderLevel(container, nodes, depth) {
		var row = document.createElement('div');
		row.className = 'graph-row';
		row.style.display = 'flex';
		row.style.justifyContent = 'center';
		row.style.gap = '12px';
		row.style.marginBottom = '8px';

		var next = [];
		nodes.forEach(function (node) {
			var a = document.createElement('a');
			a.href = node.href;
			a.textContent = ellipsize(node.name, 18);
			a.title = node.path;
			row.appendChild(a);
			if (node.children) {
				next = next.concat(node.children);
			}
		});
		container.appendChild(row);
		if (next.length) {
			renderLevel(container, next, depth + 1);
		}
	}

	function ellipsize(text, max) {
		if (text.length <= max) return text;
		return text.slice(0, max - 1) + '…';
	}
});
`
