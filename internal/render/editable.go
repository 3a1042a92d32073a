package render

// previewScript is the client half of the preview sync protocol, injected
// into editable documents. It reports selections and committed inline edits
// to the host, and applies direct DOM mutations pushed back down, so neither
// side ever re-sends the whole document for a single field change.
const previewScript = `(function () {
  'use strict';
  var selected = null;

  function post(kind, payload) {
    window.parent.postMessage({ kind: kind, payload: payload }, '*');
  }

  function metadataFor(el) {
    var rect = el.getBoundingClientRect();
    return {
      elementId: el.dataset.sectionId ? el.dataset.sectionId + ':' + el.dataset.property : '',
      elementType: elementTypeOf(el),
      tagName: el.tagName.toLowerCase(),
      sectionId: el.dataset.sectionId || '',
      property: el.dataset.property || '',
      text: el.tagName === 'IMG' || el.tagName === 'IFRAME' ? (el.src || '') : el.textContent,
      rect: { top: rect.top, left: rect.left, width: rect.width, height: rect.height }
    };
  }

  function elementTypeOf(el) {
    if (el.tagName === 'IMG') return 'image';
    if (el.tagName === 'IFRAME') return 'video';
    if (/^H[1-6]$/.test(el.tagName)) return 'heading';
    return 'text';
  }

  function clearSelection() {
    if (selected) {
      selected.classList.remove('editor-selected');
      selected = null;
    }
  }

  document.addEventListener('click', function (ev) {
    var el = ev.target.closest('[data-section-id]');
    if (!el) {
      clearSelection();
      return;
    }
    ev.preventDefault();
    clearSelection();
    selected = el;
    el.classList.add('editor-selected');
    post('element-selected', metadataFor(el));
  });

  document.addEventListener('dblclick', function (ev) {
    var el = ev.target.closest('[data-section-id]');
    if (!el) return;
    ev.preventDefault();
    if (el.tagName === 'IFRAME') {
      post('edit-video', { elementId: metadataFor(el).elementId, url: el.src });
      return;
    }
    if (el.tagName === 'IMG') return;
    el.contentEditable = 'true';
    el.focus();
    var commit = function () {
      el.contentEditable = 'false';
      el.removeEventListener('blur', commit);
      post('content-updated', {
        elementId: metadataFor(el).elementId,
        elementType: elementTypeOf(el),
        sectionId: el.dataset.sectionId || '',
        property: el.dataset.property || '',
        text: el.textContent
      });
    };
    el.addEventListener('blur', commit);
  });

  window.addEventListener('message', function (ev) {
    var msg = ev.data || {};
    var payload = msg.payload || {};
    if (msg.kind === 'deselect') {
      clearSelection();
      return;
    }
    var target = findByElementId(payload.elementId);
    if (!target) return;
    if (msg.kind === 'update-element') {
      if (payload.src !== undefined) target.src = payload.src;
      if (payload.alt !== undefined) target.alt = payload.alt;
      if (payload.html !== undefined) target.innerHTML = payload.html;
    } else if (msg.kind === 'update-video') {
      target.src = payload.url;
    }
  });

  function findByElementId(elementId) {
    if (!elementId) return null;
    var parts = elementId.split(':');
    if (parts.length !== 2) return null;
    return document.querySelector(
      '[data-section-id="' + parts[0] + '"][data-property="' + parts[1] + '"]'
    );
  }
})();`
